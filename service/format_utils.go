package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ludo-technologies/podlock/domain"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// EncodeJSON returns an indented JSON string for the given value.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data), nil
}

// WriteJSON writes indented JSON for the given value to the writer.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

// WriteYAML writes YAML for the given value to the writer.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	if err := enc.Close(); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return nil
}

// Standard formatting constants
const (
	HeaderWidth    = 40
	LabelWidth     = 20
	SectionPadding = 2
	ItemPadding    = 4
)

// ANSI color codes for consistent color usage
const (
	ColorReset  = "\x1b[0m"
	ColorRed    = "\x1b[31m"
	ColorYellow = "\x1b[33m"
	ColorGreen  = "\x1b[32m"
	ColorCyan   = "\x1b[36m"
	ColorBold   = "\x1b[1m"
)

// FormatUtils provides shared text report formatting
type FormatUtils struct {
	color bool
}

// NewFormatUtils creates a formatter that emits no ANSI codes
func NewFormatUtils() *FormatUtils {
	return &FormatUtils{}
}

// NewColorFormatUtils creates a formatter that colors headings and statuses
func NewColorFormatUtils() *FormatUtils {
	return &FormatUtils{color: true}
}

// Colorize wraps s in the color code when coloring is enabled
func (f *FormatUtils) Colorize(color, s string) string {
	if !f.color {
		return s
	}
	return color + s + ColorReset
}

// FormatMainHeader creates a standardized main header
func (f *FormatUtils) FormatMainHeader(title string) string {
	var builder strings.Builder
	builder.WriteString(f.Colorize(ColorBold, title) + "\n")
	builder.WriteString(strings.Repeat("=", HeaderWidth) + "\n\n")
	return builder.String()
}

// FormatSectionHeader creates a standardized section header
func (f *FormatUtils) FormatSectionHeader(title string) string {
	var builder strings.Builder
	builder.WriteString(f.Colorize(ColorCyan, strings.ToUpper(title)) + "\n")
	builder.WriteString(strings.Repeat("-", len(title)) + "\n")
	return builder.String()
}

// FormatSectionSeparator creates a section separator
func (f *FormatUtils) FormatSectionSeparator() string {
	return "\n"
}

// FormatLabel creates a label padded to LabelWidth
func (f *FormatUtils) FormatLabel(label string, value interface{}) string {
	padding := LabelWidth - len(label)
	if padding < 0 {
		padding = 0
	}
	return fmt.Sprintf("%s%s:%s %v\n", strings.Repeat(" ", SectionPadding), label, strings.Repeat(" ", padding), value)
}

// FormatItem writes one indented list entry
func (f *FormatUtils) FormatItem(indent int, text string) string {
	return strings.Repeat(" ", indent) + text + "\n"
}

// FormatStatus renders OK in green and FAIL in red
func (f *FormatUtils) FormatStatus(ok bool) string {
	if ok {
		return f.Colorize(ColorGreen, "OK  ")
	}
	return f.Colorize(ColorRed, "FAIL")
}

// IsTerminal reports whether w is a file attached to a terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
