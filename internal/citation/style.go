// Package citation renders papers as formatted citation strings in the
// supported bibliographic styles.
package citation

import (
	"fmt"
	"strings"

	"scholarbot/internal/paper"
)

// Style identifies a citation style.
type Style string

const (
	APA     Style = "apa"
	MLA     Style = "mla"
	Chicago Style = "chicago"
	Harvard Style = "harvard"
	IEEE    Style = "ieee"
)

// Styles returns all supported styles in display order.
func Styles() []Style {
	return []Style{APA, MLA, Chicago, Harvard, IEEE}
}

// ParseStyle matches a style name case-insensitively.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case APA:
		return APA, nil
	case MLA:
		return MLA, nil
	case Chicago:
		return Chicago, nil
	case Harvard:
		return Harvard, nil
	case IEEE:
		return IEEE, nil
	}
	return "", fmt.Errorf("style %q: %w", s, paper.ErrUnsupportedStyle)
}

// Display returns the style name as shown to users (upper-cased
// abbreviations, title-cased words).
func (s Style) Display() string {
	switch s {
	case Chicago:
		return "Chicago"
	case Harvard:
		return "Harvard"
	default:
		return strings.ToUpper(string(s))
	}
}
