package descriptor

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	CharsetAuto    = "auto"
	defaultCharset = "utf-8"
)

// DetectCharset looks for a "charset,<name>" line. The line itself is ASCII
// in every encoding descriptors are written in, so raw bytes are enough.
func DetectCharset(raw []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		name, ok := strings.CutPrefix(line, "charset,")
		if ok && strings.TrimSpace(name) != "" {
			return strings.TrimSpace(name)
		}
	}
	return defaultCharset
}

// Decode converts raw descriptor bytes to UTF-8. A leading BOM wins over charset.
func Decode(raw []byte, charset string) (string, error) {
	if charset == "" || strings.EqualFold(charset, CharsetAuto) {
		charset = DetectCharset(raw)
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("unknown charset %q: %w", charset, err)
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), raw)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", charset, err)
	}
	return string(out), nil
}
