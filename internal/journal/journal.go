// Package journal extracts per-day descriptions from a Markdown day log.
//
// A day section starts at a line such as "## Day 7: Tiled matmul" or
// "# Day 7" and runs until the next line that starts another day header.
package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gomarkdown/markdown"
)

var (
	// boundaryRe marks every line that ends the previous section.
	boundaryRe = regexp.MustCompile(`(?m)^#{1,2}\s+Day\s+\d+`)
	// headerRe is anchored at a boundary and additionally requires the
	// colon or newline that opens a section.
	headerRe = regexp.MustCompile(`\A#{1,2}\s+Day\s+(\d+)(?:\s*:\s*|\s*\n)`)
)

// Extract maps each day number found in doc to its trimmed description.
// When a day header repeats, the later section wins.
func Extract(doc string) map[int]string {
	days := make(map[int]string)
	bounds := boundaryRe.FindAllStringIndex(doc, -1)
	for i, b := range bounds {
		m := headerRe.FindStringSubmatchIndex(doc[b[0]:])
		if m == nil {
			continue
		}
		day, err := strconv.Atoi(doc[b[0]+m[2] : b[0]+m[3]])
		if err != nil {
			continue
		}
		start := b[0] + m[1]
		end := len(doc)
		for _, next := range bounds[i+1:] {
			if next[0] >= start {
				end = next[0]
				break
			}
		}
		days[day] = strings.TrimSpace(doc[start:end])
	}
	return days
}

// ParseFile reads the day log at path and extracts its sections.
// A missing file yields an empty map and no error.
func ParseFile(path string) (map[int]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[int]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read day log %s: %w", path, err)
	}
	return Extract(string(markdown.NormalizeNewlines(data))), nil
}

// PreviewLimit is the maximum number of characters kept in a preview.
const PreviewLimit = 150

// Preview returns the first non-empty line of desc that is not a Markdown
// header, cut to PreviewLimit characters with "..." appended when cut.
// It returns "" if there is no such line.
func Preview(desc string) string {
	for _, line := range strings.Split(desc, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if utf8.RuneCountInString(line) <= PreviewLimit {
			return line
		}
		return string([]rune(line)[:PreviewLimit]) + "..."
	}
	return ""
}
