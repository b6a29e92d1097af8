package shell

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRegistry is a minimal Registrar that remembers registration order
type countingRegistry struct {
	keys  []string
	calls int
}

func (r *countingRegistry) Register(img Image) int {
	r.calls++
	key := img.Key()
	for i, k := range r.keys {
		if k == key {
			return i
		}
	}
	r.keys = append(r.keys, key)
	return len(r.keys) - 1
}

func commands(lines ...string) [][]string {
	out := make([][]string, 0, len(lines))
	for _, l := range lines {
		parts := strings.Split(l, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		out = append(out, parts)
	}
	return out
}

func TestBuildFallbackBase(t *testing.T) {
	reg := &countingRegistry{}
	s, err := NewBuilder(reg).Build(7, nil)
	require.NoError(t, err)

	assert.Equal(t, 7, s.Index)
	assert.Equal(t, []Overlay{{Resource: "surface0007.png"}}, s.Base.Overlays())
	assert.Equal(t, 0, s.Animations.Len())
	assert.Len(t, reg.keys, 1)
}

func TestBuildElementsAndCollisions(t *testing.T) {
	reg := &countingRegistry{}
	s, err := NewBuilder(reg).Build(0, commands(
		"element0,overlay,body.png,0,0",
		"collision0,10,10,50,50,Head",
		"element1,overlay,face.png,12,8",
		"sakura.balloon.offsetx,80",
	))
	require.NoError(t, err)

	assert.Equal(t, []Overlay{
		{Resource: "body.png", X: 0, Y: 0},
		{Resource: "face.png", X: 12, Y: 8},
	}, s.Base.Overlays())
	require.Len(t, s.Collisions, 1)
	assert.Equal(t, "collision0", s.Collisions[0][0])
	assert.Equal(t, "Head", s.Collisions[0][5])
}

func TestBuildBaseRegisteredBeforeAnimations(t *testing.T) {
	reg := &countingRegistry{}
	// animation lines come first in the block, the base must still get id 0
	_, err := NewBuilder(reg).Build(0, commands(
		"animation0.pattern0,overlay,100,50,1,2",
		"element0,overlay,body.png,0,0",
	))
	require.NoError(t, err)

	require.Len(t, reg.keys, 2)
	assert.Equal(t, NewImage(NewOverlay("body.png", 0, 0)).Key(), reg.keys[0])
}

func TestBuildPatterns(t *testing.T) {
	reg := &countingRegistry{}
	s, err := NewBuilder(reg).Build(0, commands(
		"element0,overlay,body.png,0,0",
		"animation10.interval,sometimes",
		"animation10.pattern0,overlay,100,50,20,16",
		"animation10.pattern1,overlay,-1,50,0,0",
		"animation10.pattern2,base,200,70,3,4",
		"animation10.pattern3,base,-1,0,0,0",
	))
	require.NoError(t, err)

	anim, ok := s.Animations.Lookup("10")
	require.True(t, ok)
	assert.Equal(t, IntervalSometimes, anim.Interval)
	require.Len(t, anim.Patterns, 4)

	overlay := anim.Patterns[0].(Frame)
	assert.True(t, overlay.Image.Equal(s.Base.Extend(NewOverlay("100", 20, 16))))
	require.NotNil(t, overlay.Duration)
	assert.Equal(t, 50, *overlay.Duration)

	reuse := anim.Patterns[1].(Frame)
	assert.True(t, reuse.Image.Equal(s.Base))
	assert.Nil(t, reuse.Duration)

	replace := anim.Patterns[2].(Frame)
	assert.Equal(t, []Overlay{{Resource: "surface0200.png", X: 3, Y: 4}}, replace.Image.Overlays())
	assert.Equal(t, 70, *replace.Duration)

	assert.True(t, anim.Patterns[3].(Frame).Image.Equal(s.Base))

	// base, extended, replaced
	assert.Len(t, reg.keys, 3)
}

func TestBuildBaseTokenDoesNotRegister(t *testing.T) {
	reg := &countingRegistry{}
	_, err := NewBuilder(reg).Build(0, commands(
		"animation0.pattern0,overlay,-1,50,0,0",
		"animation0.pattern1,base,-1,50,0,0",
	))
	require.NoError(t, err)
	assert.Equal(t, 1, reg.calls)
}

func TestBuildAlternativeStart(t *testing.T) {
	reg := &countingRegistry{}
	s, err := NewBuilder(reg).Build(0, commands(
		"animation0.pattern0,alternativestart,(1,2,3)",
		"animation1.pattern0,alternativestart,(4)",
		"animation2.pattern0,alternativestart,( 5 , 6 )",
	))
	require.NoError(t, err)

	anims := s.Animations.All()
	require.Len(t, anims, 3)
	assert.Equal(t, AlternativeStart{Targets: []string{"1", "2", "3"}}, anims[0].Patterns[0])
	assert.Equal(t, AlternativeStart{Targets: []string{"4"}}, anims[1].Patterns[0])
	assert.Equal(t, AlternativeStart{Targets: []string{"5", "6"}}, anims[2].Patterns[0])
}

func TestBuildUnknownInterval(t *testing.T) {
	_, err := NewBuilder(&countingRegistry{}).Build(3, commands("animation0.interval,bind"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownInterval)
	assert.Contains(t, err.Error(), "surface3")
}

func TestBuildBadNumber(t *testing.T) {
	_, err := NewBuilder(&countingRegistry{}).Build(0, commands("animation0.pattern0,overlay,100,fast,0,0"))
	assert.ErrorIs(t, err, ErrBadNumber)

	_, err = NewBuilder(&countingRegistry{}).Build(0, commands("element0,overlay,body.png,x,0"))
	assert.ErrorIs(t, err, ErrBadNumber)
}

func TestBuildIgnoresUnknown(t *testing.T) {
	s, err := NewBuilder(&countingRegistry{}).Build(0, commands(
		"point.centerx,40",
		"animation0.pattern0,move,0,50,10,10",
		"animation0.pattern1,stop,1",
		"animation0.option,exclusive",
		"animation0",
		"0pattern0,100,5,overlay,0,0",
	))
	require.NoError(t, err)

	anim, ok := s.Animations.Lookup("0")
	require.True(t, ok)
	assert.Empty(t, anim.Patterns, "unknown methods must not create patterns")
	assert.Equal(t, 1, s.Animations.Len())
}

func TestBuildAnimationOrderCountsUnknownLines(t *testing.T) {
	s, err := NewBuilder(&countingRegistry{}).Build(0, commands(
		"animation5.pattern0,move,0,50,10,10",
		"animation3.pattern0,overlay,100,50,0,0",
		"animation7.option,exclusive",
		"animation5.pattern1,overlay,101,50,0,0",
		"animation7.pattern0,overlay,102,50,0,0",
	))
	require.NoError(t, err)

	var ids []string
	for _, a := range s.Animations.All() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"5", "3", "7"}, ids)

	anim, _ := s.Animations.Lookup("5")
	require.Len(t, anim.Patterns, 1)
	assert.Equal(t, "surface0101.png", anim.Patterns[0].(Frame).Image.Overlays()[1].Resource)
}

func TestBuildMissingTrailingFields(t *testing.T) {
	reg := &countingRegistry{}
	s, err := NewBuilder(reg).Build(0, commands("animation0.pattern0,overlay,100"))
	require.NoError(t, err)

	anim, _ := s.Animations.Lookup("0")
	f := anim.Patterns[0].(Frame)
	assert.Nil(t, f.Duration)
	assert.Equal(t, Overlay{Resource: "surface0100.png"}, f.Image.Overlays()[1])
}
