package shell

// Model is the YAML form of the parsed shell, written for inspection with --dump-model
type Model struct {
	Version  string         `yaml:"version"`
	Surfaces []SurfaceModel `yaml:"surfaces"`
}

// SurfaceModel represents one surface block after building
type SurfaceModel struct {
	Index      int              `yaml:"index"`
	Name       string           `yaml:"name"`
	Base       []Overlay        `yaml:"base"`
	Collisions [][]string       `yaml:"collisions,omitempty"`
	Animations []AnimationModel `yaml:"animations,omitempty"`
}

// AnimationModel keeps patterns in declaration order
type AnimationModel struct {
	ID       string         `yaml:"id"`
	Interval string         `yaml:"interval,omitempty"`
	Patterns []PatternModel `yaml:"patterns"`
}

// PatternModel is a flattened Pattern: Kind is "frame" or "alternativestart"
type PatternModel struct {
	Kind     string    `yaml:"kind"`
	Overlays []Overlay `yaml:"overlays,omitempty"`
	Duration *int      `yaml:"duration,omitempty"`
	Targets  []string  `yaml:"targets,omitempty"`
}

const (
	kindFrame            = "frame"
	kindAlternativeStart = "alternativestart"
)

// NewModel snapshots surfaces for serialization
func NewModel(surfaces []*Surface) *Model {
	m := &Model{Version: "1.0"}
	for _, s := range surfaces {
		sm := SurfaceModel{
			Index:      s.Index,
			Name:       s.DisplayName(),
			Base:       s.Base.Overlays(),
			Collisions: s.Collisions,
		}
		for _, anim := range s.Animations.All() {
			am := AnimationModel{ID: anim.ID, Interval: anim.Interval.String()}
			for _, p := range anim.Patterns {
				switch p := p.(type) {
				case Frame:
					am.Patterns = append(am.Patterns, PatternModel{Kind: kindFrame, Overlays: p.Image.Overlays(), Duration: p.Duration})
				case AlternativeStart:
					am.Patterns = append(am.Patterns, PatternModel{Kind: kindAlternativeStart, Targets: p.Targets})
				}
			}
			sm.Animations = append(sm.Animations, am)
		}
		m.Surfaces = append(m.Surfaces, sm)
	}
	return m
}

// ToSurfaces rebuilds the in-memory surfaces from the model
func (m *Model) ToSurfaces() ([]*Surface, error) {
	out := make([]*Surface, 0, len(m.Surfaces))
	for _, sm := range m.Surfaces {
		s := &Surface{
			Index:      sm.Index,
			Base:       NewImage(sm.Base...),
			Collisions: sm.Collisions,
			Animations: NewAnimations(),
		}
		for _, am := range sm.Animations {
			anim := s.Animations.Get(am.ID)
			if am.Interval != "" {
				iv, err := ParseInterval(am.Interval)
				if err != nil {
					return nil, err
				}
				anim.Interval = iv
			}
			for _, pm := range am.Patterns {
				if pm.Kind == kindAlternativeStart {
					anim.Patterns = append(anim.Patterns, AlternativeStart{Targets: pm.Targets})
					continue
				}
				anim.Patterns = append(anim.Patterns, Frame{Image: NewImage(pm.Overlays...), Duration: pm.Duration})
			}
		}
		out = append(out, s)
	}
	return out, nil
}
