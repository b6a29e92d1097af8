package emitter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/ivlev/shell2sprite/internal/compiler"
)

type strip struct{ w, h int }

func (s strip) Position(id int) [2]int { return [2]int{s.w * id, 0} }
func (s strip) Framesize() [2]int      { return [2]int{s.w, s.h} }

func testDocument() *Document {
	doc := NewDocument(strip{w: 64, h: 48})
	doc.AddSurface("IdleNormal", []compiler.Frame{
		{ImageIDs: []int{0}, Duration: 100, Branches: []compiler.Branch{{FrameIndex: 0, Weight: 95}, {FrameIndex: 2, Weight: 100}}},
		{ImageIDs: []int{3}, Duration: 40},
		{ImageIDs: []int{0}, Duration: 100},
	})
	doc.AddSurface("Surface5", []compiler.Frame{
		{ImageIDs: []int{1}, Duration: 100},
	})
	return doc
}

// payload strips the registration call around the JSON
func payload(t *testing.T, script, prefix string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(script, prefix), script)
	require.True(t, strings.HasSuffix(script, ");\n"), script)
	body := strings.TrimSuffix(strings.TrimPrefix(script, prefix), ");\n")
	require.True(t, gjson.Valid(body), body)
	return body
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testDocument().Write(&buf, Options{}))

	js := payload(t, buf.String(), "clippy.ready(")
	assert.Equal(t, int64(1), gjson.Get(js, "overlayCount").Int())
	assert.True(t, gjson.Get(js, "sounds").IsArray())
	assert.Len(t, gjson.Get(js, "sounds").Array(), 0)
	assert.Equal(t, `[64,48]`, gjson.Get(js, "framesize").Raw)

	idle := "animations.IdleNormal.frames"
	assert.Equal(t, int64(3), gjson.Get(js, idle+".#").Int())
	assert.Equal(t, `[[0,0]]`, gjson.Get(js, idle+".0.imagePositions").Raw)
	assert.Equal(t, `[[192,0]]`, gjson.Get(js, idle+".1.imagePositions").Raw)
	assert.Equal(t, int64(40), gjson.Get(js, idle+".1.duration").Int())
	assert.Equal(t, `[{"frameIndex":0,"weight":95},{"frameIndex":2,"weight":100}]`, gjson.Get(js, idle+".0.branching.branches").Raw)
	assert.False(t, gjson.Get(js, idle+".1.branching").Exists())

	assert.Equal(t, `[[64,0]]`, gjson.Get(js, "animations.Surface5.frames.0.imagePositions").Raw)
}

func TestWriteAgentName(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testDocument().Write(&buf, Options{RegisterFunc: "agents.register", AgentName: "Merlin", Indent: true}))

	js := payload(t, buf.String(), `agents.register("Merlin", `)
	assert.Equal(t, int64(1), gjson.Get(js, "animations.Surface5.frames.#").Int())
	assert.Contains(t, js, "\n  \"overlayCount\": 1")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultScriptName)
	require.NoError(t, testDocument().WriteFile(path, Options{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	payload(t, string(data), "clippy.ready(")
}

func TestAddSurfaceCopiesBranches(t *testing.T) {
	frames := []compiler.Frame{{ImageIDs: []int{0}, Duration: 1, Branches: []compiler.Branch{{FrameIndex: 0, Weight: 95}}}}
	doc := NewDocument(strip{w: 1, h: 1})
	doc.AddSurface("IdleNormal", frames)

	frames[0].Branches[0].Weight = 1
	assert.Equal(t, 95, doc.Animations["IdleNormal"].Frames[0].Branching.Branches[0].Weight)
}
