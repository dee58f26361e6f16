package lockfile

import (
	"regexp"
	"strings"
)

// match is a single regexp match over a line, addressable by group index
type match struct {
	text string
	idx  []int
}

// matchLine matches re against line, which must be matched in full by re's anchors
func matchLine(re *regexp.Regexp, line string) (match, bool) {
	idx := re.FindStringSubmatchIndex(line)
	if idx == nil {
		return match{}, false
	}
	return match{text: line, idx: idx}, true
}

// has reports whether group i participated in the match
func (m match) has(i int) bool {
	return 2*i+1 < len(m.idx) && m.idx[2*i] >= 0
}

// group returns the text captured by group i, or "" if it did not participate
func (m match) group(i int) string {
	if !m.has(i) {
		return ""
	}
	return m.text[m.idx[2*i]:m.idx[2*i+1]]
}

// optional returns a pointer to group i's text, or nil if it did not participate
func (m match) optional(i int) *string {
	if !m.has(i) {
		return nil
	}
	s := m.group(i)
	return &s
}

// line is one physical line of a section with its 1-based position
type line struct {
	num  int
	text string
}

// sectionLines splits a section into lines with trailing whitespace trimmed.
// An unindented first line is the section header and is dropped, as are lines
// left empty after trimming. Any later unindented line is kept for the
// section's grammar to reject.
func sectionLines(section string) []line {
	var out []line
	for i, raw := range strings.Split(section, "\n") {
		text := strings.TrimRight(raw, " \t")
		if text == "" || (i == 0 && text[0] != ' ' && text[0] != '\t') {
			continue
		}
		out = append(out, line{num: i + 1, text: text})
	}
	return out
}

// indent counts the leading spaces of s
func indent(s string) int {
	return len(s) - len(strings.TrimLeft(s, " "))
}

// splitTrimmed splits a section into lines with surrounding whitespace removed
func splitTrimmed(section string) []string {
	raw := strings.Split(section, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		out = append(out, strings.TrimSpace(l))
	}
	return out
}
