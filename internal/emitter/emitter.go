package emitter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ivlev/shell2sprite/internal/compiler"
)

const (
	DefaultRegisterFunc = "clippy.ready"
	DefaultScriptName   = "agent.js"
)

// Geometry maps a sheet cell id to its coordinates
type Geometry interface {
	Position(id int) [2]int
	Framesize() [2]int
}

type Branching struct {
	Branches []compiler.Branch `json:"branches"`
}

type Frame struct {
	ImagePositions [][2]int   `json:"imagePositions"`
	Duration       int        `json:"duration"`
	Branching      *Branching `json:"branching,omitempty"`
}

type Animation struct {
	Frames []Frame `json:"frames"`
}

// Document is the agent definition read by the playback runtime
type Document struct {
	OverlayCount int                  `json:"overlayCount"`
	Sounds       []string             `json:"sounds"`
	Framesize    [2]int               `json:"framesize"`
	Animations   map[string]Animation `json:"animations"`

	geometry Geometry
}

type Options struct {
	RegisterFunc string
	AgentName    string
	Indent       bool
}

func NewDocument(g Geometry) *Document {
	return &Document{
		OverlayCount: 1,
		Sounds:       []string{},
		Framesize:    g.Framesize(),
		Animations:   make(map[string]Animation),
		geometry:     g,
	}
}

// AddSurface converts compiled frames to sheet coordinates under the given display name
func (d *Document) AddSurface(name string, frames []compiler.Frame) {
	anim := Animation{Frames: make([]Frame, 0, len(frames))}
	for _, f := range frames {
		out := Frame{
			ImagePositions: make([][2]int, 0, len(f.ImageIDs)),
			Duration:       f.Duration,
		}
		for _, id := range f.ImageIDs {
			out.ImagePositions = append(out.ImagePositions, d.geometry.Position(id))
		}
		if len(f.Branches) > 0 {
			out.Branching = &Branching{Branches: append([]compiler.Branch(nil), f.Branches...)}
		}
		anim.Frames = append(anim.Frames, out)
	}
	d.Animations[name] = anim
}

// Write emits the document as a single registration call: fn(json); or fn("agent", json);
func (d *Document) Write(w io.Writer, opt Options) error {
	fn := opt.RegisterFunc
	if fn == "" {
		fn = DefaultRegisterFunc
	}

	var payload []byte
	var err error
	if opt.Indent {
		payload, err = json.MarshalIndent(d, "", "  ")
	} else {
		payload, err = json.Marshal(d)
	}
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if opt.AgentName != "" {
		name, err := json.Marshal(opt.AgentName)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "%s(%s, %s);\n", fn, name, payload)
	} else {
		fmt.Fprintf(bw, "%s(%s);\n", fn, payload)
	}
	return bw.Flush()
}

// WriteFile writes the registration script to path
func (d *Document) WriteFile(path string, opt Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.Write(f, opt); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
