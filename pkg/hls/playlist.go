package hls

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
)

const (
	headerTag      = "#EXTM3U"
	groupIDAttr    = "GROUP-ID"
	mediaURLPrefix = "https"
)

var nameAttrRe = regexp.MustCompile(`NAME="([^"]*)"`)

// Variant is one quality rendition of a master playlist.
type Variant struct {
	Label      string
	URL        string
	Resolution string
	FrameRate  float64
	Bandwidth  uint32
}

// MalformedLineError reports a GROUP-ID line without a usable NAME attribute.
type MalformedLineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// ParseMaster walks the playlist line by line. A GROUP-ID line labels the
// media URLs that follow it; every https line is emitted with the most recent
// label. A GROUP-ID line without a non-empty NAME aborts the parse.
func ParseMaster(body string) ([]Variant, error) {
	var (
		variants []Variant
		label    string
	)

	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, mediaURLPrefix):
			variants = append(variants, Variant{Label: label, URL: line})
		case !strings.HasPrefix(line, headerTag) && strings.Contains(line, groupIDAttr):
			m := nameAttrRe.FindStringSubmatch(line)
			if m == nil {
				return nil, &MalformedLineError{Line: lineNo, Text: line, Reason: "GROUP-ID without NAME attribute"}
			}
			if m[1] == "" {
				return nil, &MalformedLineError{Line: lineNo, Text: line, Reason: "empty NAME attribute"}
			}
			label = m[1]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan playlist: %w", err)
	}

	return variants, nil
}
