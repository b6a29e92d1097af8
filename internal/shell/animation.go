package shell

import "fmt"

// Interval controls how eagerly an animation is started by the runtime.
type Interval int

const (
	IntervalUnset Interval = iota
	IntervalNever
	IntervalSometimes
	IntervalAlways
	IntervalRunonce
)

var intervalNames = map[string]Interval{
	"never":     IntervalNever,
	"sometimes": IntervalSometimes,
	"always":    IntervalAlways,
	"runonce":   IntervalRunonce,
}

// ParseInterval fails with ErrUnknownInterval for anything but the four known values.
func ParseInterval(s string) (Interval, error) {
	if iv, ok := intervalNames[s]; ok {
		return iv, nil
	}
	return IntervalUnset, fmt.Errorf("%w: %q", ErrUnknownInterval, s)
}

func (iv Interval) String() string {
	for name, v := range intervalNames {
		if v == iv {
			return name
		}
	}
	return ""
}

// Weight is the branch weight of the interval.
// Unset behaves like never.
func (iv Interval) Weight() int {
	switch iv {
	case IntervalSometimes:
		return 30
	case IntervalAlways, IntervalRunonce:
		return 100
	default:
		return 0
	}
}

// Pattern is one step of an animation: either a Frame or an AlternativeStart.
type Pattern interface {
	pattern()
}

// Frame renders Image for Duration milliseconds. A nil Duration means the default.
type Frame struct {
	Image    Image
	Duration *int
}

// AlternativeStart does not render; it branches into one of Targets.
type AlternativeStart struct {
	Targets []string
}

func (Frame) pattern()            {}
func (AlternativeStart) pattern() {}

type Animation struct {
	ID       string
	Interval Interval
	Patterns []Pattern
}

// Animations is a map keyed by animation id that iterates in first-insertion order.
type Animations struct {
	order []string
	byID  map[string]*Animation
}

func NewAnimations() *Animations {
	return &Animations{byID: make(map[string]*Animation)}
}

// Get returns the animation with the given id, creating it on first use.
func (a *Animations) Get(id string) *Animation {
	if anim, ok := a.byID[id]; ok {
		return anim
	}
	anim := &Animation{ID: id}
	a.byID[id] = anim
	a.order = append(a.order, id)
	return anim
}

func (a *Animations) Lookup(id string) (*Animation, bool) {
	anim, ok := a.byID[id]
	return anim, ok
}

func (a *Animations) Len() int { return len(a.order) }

// All returns the animations in insertion order.
func (a *Animations) All() []*Animation {
	out := make([]*Animation, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.byID[id])
	}
	return out
}

// Surface is one pose of the mascot.
type Surface struct {
	Index      int
	Base       Image
	Collisions [][]string
	Animations *Animations
}

// DisplayName is the animation name the playback runtime knows this surface by.
func (s *Surface) DisplayName() string {
	return DisplayName(s.Index)
}

func DisplayName(index int) string {
	switch index {
	case 0:
		return "IdleNormal"
	case 1:
		return "Show"
	default:
		return fmt.Sprintf("Surface%d", index)
	}
}
