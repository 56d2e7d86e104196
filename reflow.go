package textgrab

import (
	"strings"
	"unicode/utf8"
)

// DefaultLineWidth is the line width used for reflowed text blocks.
const DefaultLineWidth = 80

// Reflow wraps text into lines shorter than width without breaking words.
//
// Words are separated by runs of whitespace. A word is added to the current
// line while the resulting line stays below width; otherwise the line is
// flushed and the word starts a new one. A single word of width or more
// still gets its own line. Every flushed line is preceded by a newline, so
// non-empty output always starts with "\n". A width of zero or less selects
// DefaultLineWidth.
func Reflow(text string, width int) string {
	if width <= 0 {
		width = DefaultLineWidth
	}

	var b strings.Builder
	var line strings.Builder
	lineLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)
		if lineLen == 0 {
			line.WriteString(word)
			lineLen = wordLen
			continue
		}
		if lineLen+1+wordLen < width {
			line.WriteByte(' ')
			line.WriteString(word)
			lineLen += 1 + wordLen
			continue
		}
		b.WriteByte('\n')
		b.WriteString(line.String())
		line.Reset()
		line.WriteString(word)
		lineLen = wordLen
	}
	if lineLen > 0 {
		b.WriteByte('\n')
		b.WriteString(line.String())
	}

	return b.String()
}
