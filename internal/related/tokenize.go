package related

import "strings"

// stopwords are dropped before lexical comparison. The list covers the
// common English function words that dominate paper titles.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "for": true, "from": true,
	"has": true, "have": true, "in": true, "into": true, "is": true,
	"it": true, "its": true, "of": true, "on": true, "or": true,
	"over": true, "that": true, "the": true, "their": true, "this": true,
	"to": true, "towards": true, "under": true, "using": true,
	"via": true, "we": true, "with": true,
}

// tokenize lower-cases text, strips non-alphanumeric characters, and
// drops stopwords and single-character tokens. It returns the token set
// plus the first-occurrence order (used for deterministic keyword
// reporting).
func tokenize(text string) (map[string]bool, []string) {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})

	set := make(map[string]bool, len(fields))
	var order []string
	for _, tok := range fields {
		if len(tok) < 2 || stopwords[tok] || set[tok] {
			continue
		}
		set[tok] = true
		order = append(order, tok)
	}
	return set, order
}
