package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// ordinalWords holds the recognized ordinal words in index order;
// position i maps to reference i+1. Keeping this a slice makes every
// lookup over it deterministic.
var ordinalWords = []string{
	"first", "second", "third", "fourth", "fifth",
	"sixth", "seventh", "eighth", "ninth", "tenth",
}

var ordinalAlt = strings.Join(ordinalWords, "|")

var (
	paperNumRe   = regexp.MustCompile(`\bpaper\s+#?(\d+)\b`)
	nthPaperRe   = regexp.MustCompile(`\b(?:the\s+)?(\d+)(?:st|nd|rd|th)\s+paper\b`)
	wordPaperRe  = regexp.MustCompile(`\b(` + ordinalAlt + `)\s+paper\b`)
	bareNumberRe = regexp.MustCompile(`\b(\d+)\b`)
)

// ordinalValue maps an ordinal word to its 1-based index, 0 if unknown.
func ordinalValue(word string) int {
	for i, w := range ordinalWords {
		if w == word {
			return i + 1
		}
	}
	return 0
}

// ExtractPaperRef pulls a 1-based paper reference out of a lower-cased
// message. It accepts "paper N", "the Nth paper", ordinal words up to
// "tenth", and finally a bare number. Validity against the registry is
// the dispatcher's concern, not ours.
func ExtractPaperRef(lower string) (int, bool) {
	if m := paperNumRe.FindStringSubmatch(lower); m != nil {
		return atoiRef(m[1])
	}
	if m := nthPaperRe.FindStringSubmatch(lower); m != nil {
		return atoiRef(m[1])
	}
	if m := wordPaperRe.FindStringSubmatch(lower); m != nil {
		return ordinalValue(m[1]), true
	}
	// Ordinal word without the "paper" noun: "cite the third one".
	for i, word := range ordinalWords {
		if containsWord(lower, word) {
			return i + 1, true
		}
	}
	if m := bareNumberRe.FindStringSubmatch(lower); m != nil {
		return atoiRef(m[1])
	}
	return 0, false
}

// extractNumbers returns every standalone number in order of appearance.
func extractNumbers(lower string) []int {
	var out []int
	for _, m := range bareNumberRe.FindAllStringSubmatch(lower, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// refAfterKeyword finds a number immediately following a keyword, as in
// "note 2" or "paper 1".
func refAfterKeyword(lower, keyword string) (int, bool) {
	re := regexp.MustCompile(`\b` + keyword + `\s+#?(\d+)\b`)
	if m := re.FindStringSubmatch(lower); m != nil {
		return atoiRef(m[1])
	}
	return 0, false
}

// refNearKeyword finds a reference attached to a keyword: a number
// following it ("note 2") or an ordinal word preceding it ("second
// note", "the first paper").
func refNearKeyword(lower, keyword string) (int, bool) {
	if n, ok := refAfterKeyword(lower, keyword); ok {
		return n, true
	}
	re := regexp.MustCompile(`\b(` + ordinalAlt + `)\s+` + keyword + `\b`)
	if m := re.FindStringSubmatch(lower); m != nil {
		return ordinalValue(m[1]), true
	}
	return 0, false
}

func atoiRef(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// containsWord reports whether lower contains word with non-letter
// boundaries on both sides.
func containsWord(lower, word string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], word)
		if i < 0 {
			return false
		}
		i += idx
		leftOK := i == 0 || !isLetter(lower[i-1])
		right := i + len(word)
		rightOK := right == len(lower) || !isLetter(lower[right])
		if leftOK && rightOK {
			return true
		}
		idx = i + len(word)
	}
}

func isLetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}
