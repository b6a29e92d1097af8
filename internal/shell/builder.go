package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownInterval = errors.New("unknown animation interval")
	ErrBadNumber       = errors.New("malformed number")
)

// BaseToken reuses the surface base image unchanged.
const BaseToken = "-1"

// Registrar assigns stable ids to images. Registering an equal image twice
// must return the same id.
type Registrar interface {
	Register(img Image) int
}

// Builder turns the command lines of one surface block into a Surface,
// registering every image it composes.
type Builder struct {
	reg Registrar
}

func NewBuilder(reg Registrar) *Builder {
	return &Builder{reg: reg}
}

// Build consumes the comma-split commands of a surface block.
// Static lines are processed before animation lines because patterns refer to the base image.
func (b *Builder) Build(index int, commands [][]string) (*Surface, error) {
	s := &Surface{Index: index, Animations: NewAnimations()}

	var elements []Overlay
	for _, cmd := range commands {
		if len(cmd) == 0 {
			continue
		}
		switch {
		case strings.HasPrefix(cmd[0], "collision"):
			s.Collisions = append(s.Collisions, append([]string(nil), cmd...))
		case strings.HasPrefix(cmd[0], "element"):
			o, err := parseElement(cmd)
			if err != nil {
				return nil, fmt.Errorf("surface%d %s: %w", index, cmd[0], err)
			}
			elements = append(elements, o)
		}
	}

	if len(elements) == 0 {
		elements = []Overlay{NewOverlay(strconv.Itoa(index), 0, 0)}
	}
	s.Base = NewImage(elements...)
	b.reg.Register(s.Base)

	for _, cmd := range commands {
		if len(cmd) == 0 || !strings.HasPrefix(cmd[0], "animation") {
			continue
		}
		if err := b.animationLine(s, cmd); err != nil {
			return nil, fmt.Errorf("surface%d %s: %w", index, cmd[0], err)
		}
	}

	return s, nil
}

// elementN,method,file,x,y
func parseElement(cmd []string) (Overlay, error) {
	if len(cmd) < 3 {
		return Overlay{}, fmt.Errorf("element needs a resource, got %d fields", len(cmd))
	}
	x, err := intAt(cmd, 3, 0)
	if err != nil {
		return Overlay{}, err
	}
	y, err := intAt(cmd, 4, 0)
	if err != nil {
		return Overlay{}, err
	}
	return NewOverlay(cmd[2], x, y), nil
}

func (b *Builder) animationLine(s *Surface, cmd []string) error {
	head := strings.SplitN(cmd[0], ".", 3)
	if len(head) < 2 {
		return nil
	}
	id := strings.TrimPrefix(head[0], "animation")
	info := head[1]
	args := cmd[1:]

	// Порядок анимаций задает первая строка с этим id, даже нераспознанная
	anim := s.Animations.Get(id)

	switch {
	case info == "interval":
		if len(args) == 0 {
			return fmt.Errorf("%w: empty", ErrUnknownInterval)
		}
		iv, err := ParseInterval(args[0])
		if err != nil {
			return err
		}
		anim.Interval = iv
	case strings.HasPrefix(info, "pattern"):
		p, err := b.pattern(s.Base, args)
		if err != nil {
			return err
		}
		if p != nil {
			anim.Patterns = append(anim.Patterns, p)
		}
	}
	return nil
}

// pattern parses "method,token,wait,x,y" or "alternativestart,(a,b,...)".
// Unknown methods yield a nil pattern.
func (b *Builder) pattern(base Image, args []string) (Pattern, error) {
	if len(args) == 0 {
		return nil, nil
	}
	method := args[0]

	switch method {
	case "alternativestart":
		return AlternativeStart{Targets: parseTargets(args[1:])}, nil
	case "overlay", "base":
	default:
		return nil, nil
	}

	if len(args) < 2 {
		return nil, fmt.Errorf("%s pattern without resource", method)
	}
	token := args[1]
	if token == BaseToken {
		return Frame{Image: base}, nil
	}

	duration, err := optionalIntAt(args, 2)
	if err != nil {
		return nil, err
	}
	x, err := intAt(args, 3, 0)
	if err != nil {
		return nil, err
	}
	y, err := intAt(args, 4, 0)
	if err != nil {
		return nil, err
	}

	o := NewOverlay(token, x, y)
	var img Image
	if method == "overlay" {
		img = base.Extend(o)
	} else {
		img = NewImage(o)
	}
	b.reg.Register(img)
	return Frame{Image: img, Duration: duration}, nil
}

// parseTargets rejoins "(1", "2", "3)" into [1 2 3].
func parseTargets(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	parts := append([]string(nil), tokens...)
	parts[0] = strings.TrimPrefix(parts[0], "(")
	last := len(parts) - 1
	parts[last] = strings.TrimSuffix(parts[last], ")")

	targets := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			targets = append(targets, p)
		}
	}
	return targets
}

func intAt(args []string, i, def int) (int, error) {
	if i >= len(args) || args[i] == "" {
		return def, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadNumber, args[i])
	}
	return n, nil
}

func optionalIntAt(args []string, i int) (*int, error) {
	if i >= len(args) || args[i] == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadNumber, args[i])
	}
	return &n, nil
}
