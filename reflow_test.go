package textgrab_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/textgrab"
	"github.com/stretchr/testify/assert"
)

func TestReflow(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, textgrab.Reflow("", 80))
	})

	t.Run("returns empty string for whitespace only input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, textgrab.Reflow(" \t\n  ", 80))
	})

	t.Run("short text becomes a single line preceded by a newline", func(t *testing.T) {
		t.Parallel()

		result := textgrab.Reflow("  Read   more\nhere about\tcats ", 80)

		assert.Equal(t, "\nRead more here about cats", result)
	})

	t.Run("wraps at width", func(t *testing.T) {
		t.Parallel()

		result := textgrab.Reflow("aaa bbb ccc ddd", 8)

		assert.Equal(t, "\naaa bbb\nccc ddd", result)
	})

	t.Run("line length stays strictly below width", func(t *testing.T) {
		t.Parallel()

		// "aaa bbbb" would be exactly 8 characters.
		result := textgrab.Reflow("aaa bbbb", 8)

		assert.Equal(t, "\naaa\nbbbb", result)
	})

	t.Run("long word gets its own line", func(t *testing.T) {
		t.Parallel()

		result := textgrab.Reflow("a supercalifragilistic b", 10)

		assert.Equal(t, "\na\nsupercalifragilistic\nb", result)
	})

	t.Run("leading long word is not preceded by an empty line", func(t *testing.T) {
		t.Parallel()

		result := textgrab.Reflow("supercalifragilistic b", 10)

		assert.Equal(t, "\nsupercalifragilistic\nb", result)
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		t.Parallel()

		result := textgrab.Reflow("żółw ćma", 10)

		assert.Equal(t, "\nżółw ćma", result)
	})

	t.Run("non-positive width uses default", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("word ", 40)

		assert.Equal(t, textgrab.Reflow(text, textgrab.DefaultLineWidth), textgrab.Reflow(text, 0))
	})

	t.Run("never exceeds width except for single words", func(t *testing.T) {
		t.Parallel()

		text := "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod " +
			"tempor incididunt ut labore et dolore magna aliqua. Pneumonoultramicroscopicsilicovolcanoconiosis " +
			"ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip."

		for _, width := range []int{5, 12, 20, 33, 80} {
			result := textgrab.Reflow(text, width)

			assert.True(t, strings.HasPrefix(result, "\n"))
			lines := strings.Split(result, "\n")[1:]
			for _, line := range lines {
				if strings.Contains(line, " ") {
					assert.Less(t, utf8.RuneCountInString(line), width, "line %q at width %d", line, width)
				}
				assert.NotEmpty(t, line)
			}
			assert.Equal(t, strings.Fields(text), strings.Fields(result))
		}
	})
}
