// Package descriptor reads shell descriptor files: titled blocks delimited by
// "{" and "}" lines, each line a comma separated command.
package descriptor

import (
	"bufio"
	"errors"
	"strconv"
	"strings"
)

var ErrEmptyDescriptor = errors.New("empty descriptor")

const (
	titleDescript = "descript"
	titleSurface  = "surface"
)

// Block is one titled section of the descriptor
type Block struct {
	Title string
	Lines []string
}

// Parse splits text into blocks. Blank lines and // comments are skipped,
// a block left open at the end of input is dropped.
func Parse(text string) ([]Block, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDescriptor
	}

	var blocks []Block
	var cur Block
	inBlock := false

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if inBlock {
			if line == "}" {
				blocks = append(blocks, cur)
				cur = Block{}
				inBlock = false
				continue
			}
			cur.Lines = append(cur.Lines, line)
			continue
		}

		switch {
		case line == "{":
			inBlock = true
		case strings.HasSuffix(line, "{"):
			cur.Title = strings.TrimSpace(strings.TrimSuffix(line, "{"))
			inBlock = true
		default:
			cur.Title = line
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return blocks, nil
}

// SurfaceIndex reports the N of a "surfaceN" title
func SurfaceIndex(title string) (int, bool) {
	if title == titleDescript || !strings.HasPrefix(title, titleSurface) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(title, titleSurface))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Split tokenizes a command line on commas, trimming each token
func Split(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Commands tokenizes every line of the block
func (b Block) Commands() [][]string {
	out := make([][]string, 0, len(b.Lines))
	for _, line := range b.Lines {
		out = append(out, Split(line))
	}
	return out
}
