package mrt

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapIndent soft-wraps s at width, breaking on runs of spaces and
// prefixing continuation lines with indent spaces. Interior spacing is
// preserved except at break points. Words longer than the width are kept
// whole.
func wrapIndent(s string, width, indent int) []string {
	if indent >= width {
		indent = 0
	}
	pad := strings.Repeat(" ", indent)

	var lines []string
	cur := ""
	i := 0
	for i < len(s) {
		j := i
		for j < len(s) && s[j] == ' ' {
			j++
		}
		k := j
		for k < len(s) && s[k] != ' ' {
			k++
		}
		sp, word := s[i:j], s[j:k]
		i = k
		if word == "" {
			break
		}
		if cur == "" {
			// Leading spaces of the original line are kept.
			cur = sp + word
			continue
		}
		if runewidth.StringWidth(cur)+len(sp)+runewidth.StringWidth(word) <= width {
			cur += sp + word
			continue
		}
		lines = append(lines, cur)
		cur = pad + word
	}
	if cur != "" || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

// splitLine wraps a free-text line to the ReadMe page width, indenting
// continuation lines by shift spaces inside the remaining width.
func splitLine(s string, shift int) string {
	if shift > maxReadMeLine {
		shift = 0
	}
	parts := wrapIndent(s, maxReadMeLine-shift, 0)
	return strings.Join(parts, "\n"+strings.Repeat(" ", shift))
}

// fill wraps a free-text line to the full page width with indented
// continuation lines.
func fill(s string, shift int) string {
	return strings.Join(wrapIndent(s, maxReadMeLine, shift), "\n")
}
