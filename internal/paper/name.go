package paper

import "strings"

// Name is an author name split into given and family parts for
// citation rendering.
type Name struct {
	First string // Given name(s), may be empty
	Last  string // Family name
}

// ParseName splits a free-form author string into a Name.
//
// Supported formats:
//   - "Smith"        → last="Smith"
//   - "John Smith"   → first="John", last="Smith"
//   - "Smith, John"  → first="John", last="Smith"
//
// Multi-word given names keep their internal order: "John A Smith"
// parses as first="John A", last="Smith".
func ParseName(input string) Name {
	input = strings.TrimSpace(input)
	if input == "" {
		return Name{}
	}

	if idx := strings.Index(input, ","); idx > 0 {
		return Name{
			First: strings.TrimSpace(input[idx+1:]),
			Last:  strings.TrimSpace(input[:idx]),
		}
	}

	parts := strings.Fields(input)
	if len(parts) == 1 {
		return Name{Last: parts[0]}
	}

	return Name{
		First: strings.Join(parts[:len(parts)-1], " "),
		Last:  parts[len(parts)-1],
	}
}

// Initials returns the given-name initials, each followed by a period,
// joined by spaces: "John Allen" → "J. A.". Empty if no first name.
func (n Name) Initials() string {
	if n.First == "" {
		return ""
	}
	var out []string
	for _, part := range strings.Fields(n.First) {
		r := []rune(part)
		out = append(out, string(r[0])+".")
	}
	return strings.Join(out, " ")
}
