package compiler

import (
	"errors"
	"fmt"

	"github.com/ivlev/shell2sprite/internal/shell"
)

// DefaultDuration is used for the idle frames and for patterns without a wait
const DefaultDuration = 100

const (
	idleWeight     = 95  // chance to stay on the idle frame
	terminalWeight = 100 // animation end -> closing frame
)

var ErrUnresolvedTarget = errors.New("branch target has no frames")

// Registrar maps an image to its sheet cell id
type Registrar interface {
	Register(img shell.Image) int
}

// Branch is a weighted transition to another frame of the same surface
type Branch struct {
	FrameIndex int `json:"frameIndex"`
	Weight     int `json:"weight"`
}

// Frame is one step of the compiled graph
type Frame struct {
	ImageIDs []int
	Duration int
	Branches []Branch
}

// targetKind distinguishes the two sentinels from real animation ids
type targetKind int

const (
	toAnimation targetKind = iota
	toSelf                 // resolves to the idle frame 0
	toEnd                  // resolves to the closing frame
)

type pendingBranch struct {
	source int
	kind   targetKind
	target string
	weight int
}

// Compiler flattens the animations of a surface into a frame list with branches
type Compiler struct {
	reg             Registrar
	DefaultDuration int
}

// NewCompiler creates a compiler with the default frame duration
func NewCompiler(reg Registrar) *Compiler {
	return &Compiler{reg: reg, DefaultDuration: DefaultDuration}
}

// Compile builds the frame graph of one surface.
//
// Layout: frame 0 is the idle frame, then the frames of every animation in
// declaration order, then a copy of frame 0 that closes the graph.
// Branch weights are recorded as is and never normalized.
func (c *Compiler) Compile(s *shell.Surface) ([]Frame, error) {
	frames := []Frame{{
		ImageIDs: []int{c.reg.Register(s.Base)},
		Duration: c.DefaultDuration,
	}}

	var pending []pendingBranch
	keyframes := make(map[string]int)

	for _, anim := range s.Animations.All() {
		keyframe := len(frames)
		emitted := 0

		for _, p := range anim.Patterns {
			switch p := p.(type) {
			case shell.Frame:
				duration := c.DefaultDuration
				if p.Duration != nil {
					duration = *p.Duration
				}
				frames = append(frames, Frame{
					ImageIDs: []int{c.reg.Register(p.Image)},
					Duration: duration,
				})
				emitted++

			case shell.AlternativeStart:
				// Before the first own frame the branch leaves the idle frame.
				source := 0
				if emitted > 0 {
					source = keyframe + emitted - 1
				}
				weight := anim.Interval.Weight()
				n := len(p.Targets)
				for i, target := range p.Targets {
					pending = append(pending, pendingBranch{
						source: source,
						kind:   toAnimation,
						target: target,
						weight: (i + 1) * weight / n,
					})
				}

			default:
				return nil, fmt.Errorf("surface%d animation %s: unsupported pattern %T", s.Index, anim.ID, p)
			}
		}

		if emitted > 0 {
			keyframes[anim.ID] = keyframe
			pending = append(pending, pendingBranch{
				source: keyframe + emitted - 1,
				kind:   toEnd,
				weight: terminalWeight,
			})
		}
	}

	closing := Frame{
		ImageIDs: append([]int(nil), frames[0].ImageIDs...),
		Duration: frames[0].Duration,
	}
	frames = append(frames, closing)

	pending = append(pending,
		pendingBranch{source: 0, kind: toSelf, weight: idleWeight},
		pendingBranch{source: 0, kind: toEnd, weight: terminalWeight},
	)

	last := len(frames) - 1
	for _, pb := range pending {
		var index int
		switch pb.kind {
		case toSelf:
			index = 0
		case toEnd:
			index = last
		default:
			kf, ok := keyframes[pb.target]
			if !ok {
				return nil, fmt.Errorf("surface%d: %w: animation %q", s.Index, ErrUnresolvedTarget, pb.target)
			}
			index = kf
		}
		frames[pb.source].Branches = append(frames[pb.source].Branches, Branch{FrameIndex: index, Weight: pb.weight})
	}

	return frames, nil
}
