package intent

import "strings"

// styleKeywords are the recognized citation-style tokens.
var styleKeywords = []string{"apa", "mla", "chicago", "harvard", "ieee"}

// msg bundles the original message with its lower-cased form so
// matchers can test case-insensitively but extract case-preserved text.
type msg struct {
	orig  string
	lower string
}

// matchers is the ordered free-text battery. First match wins; the
// order doubles as the ambiguity tie-break, with the generic research
// fallback last.
var matchers = []func(m msg) (Intent, bool){
	matchCite,
	matchBibliography,
	matchListPapers,
	matchListStyles,
	matchAddNote,
	matchViewNotes,
	matchDeleteNote,
	matchClearNotes,
	matchReadingList,
	matchDeletePaper,
	matchRelated,
	matchResearch,
}

func classifyFreeText(original string) Intent {
	m := msg{orig: original, lower: strings.ToLower(original)}
	for _, match := range matchers {
		if in, ok := match(m); ok {
			return in
		}
	}
	return Intent{Kind: Unrecognized}
}

// findStyle returns the first style keyword present in the message.
func findStyle(lower string) string {
	for _, s := range styleKeywords {
		if containsWord(lower, s) {
			return s
		}
	}
	return ""
}

func anyWord(lower string, words ...string) bool {
	for _, w := range words {
		if containsWord(lower, w) {
			return true
		}
	}
	return false
}

// matchCite fires on an action verb plus a paper reference, with an
// optional style keyword ("Cite paper 2 in Chicago style").
func matchCite(m msg) (Intent, bool) {
	if !anyWord(m.lower, "cite", "citation", "format") {
		return Intent{}, false
	}
	// Bibliography and note requests mention citing too; let their
	// matchers handle them.
	if anyWord(m.lower, "bibliography", "references", "citations", "note", "notes") {
		return Intent{}, false
	}
	ref, ok := ExtractPaperRef(m.lower)
	if !ok {
		return Intent{}, false
	}
	return Intent{Kind: Cite, PaperRef: ref, Style: findStyle(m.lower)}, true
}

// matchBibliography fires on bibliography/references/citations, with an
// optional style keyword.
func matchBibliography(m msg) (Intent, bool) {
	if !anyWord(m.lower, "bibliography", "references", "citations") {
		return Intent{}, false
	}
	if anyWord(m.lower, "note", "notes") {
		return Intent{}, false
	}
	return Intent{Kind: ShowBibliography, Style: findStyle(m.lower)}, true
}

func matchListPapers(m msg) (Intent, bool) {
	if strings.Contains(m.lower, "list papers") ||
		strings.Contains(m.lower, "papers you've cited") ||
		strings.Contains(m.lower, "papers you have cited") ||
		strings.Contains(m.lower, "what papers") {
		return Intent{Kind: ListPapers}, true
	}
	return Intent{}, false
}

func matchListStyles(m msg) (Intent, bool) {
	if strings.Contains(m.lower, "citation styles") || strings.Contains(m.lower, "citation formats") {
		return Intent{Kind: ListStyles}, true
	}
	return Intent{}, false
}

// matchAddNote fires on note + add/create + a paper reference, with the
// note body taken from after a colon or a "that"/"saying" separator.
func matchAddNote(m msg) (Intent, bool) {
	if !anyWord(m.lower, "note") || !anyWord(m.lower, "add", "create") {
		return Intent{}, false
	}
	ref, ok := ExtractPaperRef(m.lower)
	if !ok {
		return Intent{}, false
	}
	text := noteText(m)
	if text == "" {
		return Intent{}, false
	}
	return Intent{Kind: AddNote, PaperRef: ref, Text: text}, true
}

// noteText extracts the case-preserved note body following the first
// separator: colon, " that ", or " saying ".
func noteText(m msg) string {
	if i := strings.Index(m.orig, ":"); i >= 0 {
		return strings.TrimSpace(m.orig[i+1:])
	}
	for _, sep := range []string{" that ", " saying "} {
		if i := strings.Index(m.lower, sep); i >= 0 {
			return strings.TrimSpace(m.orig[i+len(sep):])
		}
	}
	return ""
}

func matchViewNotes(m msg) (Intent, bool) {
	if !anyWord(m.lower, "note", "notes") || !anyWord(m.lower, "show", "view", "display") {
		return Intent{}, false
	}
	in := Intent{Kind: ViewNotes}
	if ref, ok := ExtractPaperRef(m.lower); ok {
		in.PaperRef = ref
	}
	return in, true
}

// matchDeleteNote needs delete/remove + note + two references. "note N"
// / "second note" and "paper N" / "first paper" phrases disambiguate
// which is which; bare numbers fall back to paper-then-note order,
// matching !delete_note. A note-deletion request whose references
// cannot be pinned down is consumed here with a usage hint: it must
// never fall through to the paper-deletion matcher.
func matchDeleteNote(m msg) (Intent, bool) {
	if !anyWord(m.lower, "delete", "remove") || !anyWord(m.lower, "note", "notes") {
		return Intent{}, false
	}
	// "remove ... from reading list Notes" belongs to the list matcher.
	if strings.Contains(m.lower, "reading list") {
		return Intent{}, false
	}

	noteRef, noteOK := refNearKeyword(m.lower, "note")
	paperRef, paperOK := refNearKeyword(m.lower, "paper")

	if !noteOK || !paperOK {
		nums := extractNumbers(m.lower)
		if len(nums) >= 2 {
			if !paperOK {
				paperRef, paperOK = nums[0], true
			}
			if !noteOK {
				noteRef, noteOK = nums[1], true
			}
		}
	}
	if !noteOK || !paperOK || paperRef < 1 || noteRef < 1 {
		return Intent{Kind: Unrecognized, Usage: "Usage: " + usages["delete_note"]}, true
	}
	return Intent{Kind: DeleteNote, PaperRef: paperRef, NoteRef: noteRef}, true
}

func matchClearNotes(m msg) (Intent, bool) {
	if !anyWord(m.lower, "clear") || !anyWord(m.lower, "note", "notes") {
		return Intent{}, false
	}
	in := Intent{Kind: ClearNotes}
	if ref, ok := ExtractPaperRef(m.lower); ok {
		in.PaperRef = ref
	}
	return in, true
}

// matchReadingList handles all reading-list phrasings: create/new, add,
// remove, delete, and view.
func matchReadingList(m msg) (Intent, bool) {
	if !strings.Contains(m.lower, "reading list") {
		return Intent{}, false
	}

	name := listName(m)
	switch {
	case anyWord(m.lower, "create", "new", "make", "start"):
		if name == "" {
			return Intent{}, false
		}
		return Intent{Kind: ReadingListCreate, ListName: name}, true

	case anyWord(m.lower, "add", "put"):
		ref, ok := ExtractPaperRef(m.lower)
		if !ok || name == "" {
			return Intent{}, false
		}
		return Intent{Kind: ReadingListAdd, ListName: name, PaperRef: ref}, true

	case anyWord(m.lower, "remove", "take"):
		ref, ok := ExtractPaperRef(m.lower)
		if !ok || name == "" {
			return Intent{}, false
		}
		return Intent{Kind: ReadingListRemove, ListName: name, PaperRef: ref}, true

	case anyWord(m.lower, "delete", "drop"):
		if name == "" {
			return Intent{}, false
		}
		return Intent{Kind: ReadingListDelete, ListName: name}, true

	default:
		// "show my reading lists", "view reading list Quantum"
		return Intent{Kind: ReadingListView, ListName: name}, true
	}
}

// listName extracts a reading-list name: a quoted token, the word after
// "called"/"named", or the last word of the message when it is not
// part of the "reading list" phrase itself.
func listName(m msg) string {
	if start := strings.IndexAny(m.orig, `"'`); start >= 0 {
		quote := m.orig[start]
		if end := strings.IndexByte(m.orig[start+1:], quote); end >= 0 {
			return m.orig[start+1 : start+1+end]
		}
	}

	for _, kw := range []string{" called ", " named "} {
		if i := strings.Index(m.lower, kw); i >= 0 {
			rest := strings.Fields(m.orig[i+len(kw):])
			if len(rest) > 0 {
				return strings.Trim(rest[0], ".,!?")
			}
		}
	}

	fields := strings.Fields(m.orig)
	if len(fields) == 0 {
		return ""
	}
	last := strings.Trim(fields[len(fields)-1], ".,!?")
	lower := strings.ToLower(last)
	if lower == "list" || lower == "lists" || lower == "reading" {
		return ""
	}
	// A trailing paper reference is not a name.
	if _, isNum := atoiRef(last); isNum {
		return ""
	}
	return last
}

// matchDeletePaper runs after the note and reading-list matchers.
// Deleting a paper cascades through its notes and list entries, so any
// mention of notes disqualifies the message outright.
func matchDeletePaper(m msg) (Intent, bool) {
	if !anyWord(m.lower, "delete", "remove") || !containsWord(m.lower, "paper") {
		return Intent{}, false
	}
	if anyWord(m.lower, "note", "notes") {
		return Intent{}, false
	}
	ref, ok := ExtractPaperRef(m.lower)
	if !ok {
		return Intent{}, false
	}
	return Intent{Kind: DeletePaper, PaperRef: ref}, true
}

func matchRelated(m msg) (Intent, bool) {
	if !containsWord(m.lower, "related") && !containsWord(m.lower, "similar") {
		return Intent{}, false
	}
	ref, ok := ExtractPaperRef(m.lower)
	if !ok {
		return Intent{}, false
	}

	in := Intent{Kind: FindRelated, PaperRef: ref}
	// An additional number caps the result count: "show 3 papers
	// related to paper 1".
	for _, n := range extractNumbers(m.lower) {
		if n != ref && n >= 1 {
			in.MaxResults = n
			break
		}
	}
	return in, true
}

// matchResearch is the fallback: interrogative messages or research
// signal words become a search query carrying the full message.
func matchResearch(m msg) (Intent, bool) {
	if strings.Contains(m.orig, "?") ||
		anyWord(m.lower, "research", "literature") ||
		strings.Contains(m.lower, "papers on") ||
		strings.Contains(m.lower, "papers about") ||
		strings.Contains(m.lower, "advances in") ||
		strings.Contains(m.lower, "find papers") ||
		strings.Contains(m.lower, "studies on") {
		return Intent{Kind: ResearchQuery, Text: m.orig}, true
	}
	return Intent{}, false
}
