// Package intent classifies free-form user messages into structured
// intents with extracted arguments. Classification is two-phase: an
// exact prefixed-command parse, then an ordered battery of keyword
// matchers over the lower-cased message. The classifier never consults
// session state; reference validity is checked downstream.
package intent

// Kind discriminates the intent variants.
type Kind int

const (
	Unrecognized Kind = iota
	Ping
	Cite
	ShowBibliography
	ListPapers
	ListStyles
	AddNote
	ViewNotes
	DeleteNote
	ClearNotes
	ReadingListCreate
	ReadingListAdd
	ReadingListView
	ReadingListRemove
	ReadingListDelete
	FindRelated
	DeletePaper
	Reset
	Help
	ResearchQuery
)

var kindNames = map[Kind]string{
	Unrecognized:      "unrecognized",
	Ping:              "ping",
	Cite:              "cite",
	ShowBibliography:  "bibliography",
	ListPapers:        "papers",
	ListStyles:        "citation_styles",
	AddNote:           "add_note",
	ViewNotes:         "view_notes",
	DeleteNote:        "delete_note",
	ClearNotes:        "clear_notes",
	ReadingListCreate: "reading_list create",
	ReadingListAdd:    "reading_list add",
	ReadingListView:   "reading_list view",
	ReadingListRemove: "reading_list remove",
	ReadingListDelete: "reading_list delete",
	FindRelated:       "related",
	DeletePaper:       "delete_paper",
	Reset:             "reset",
	Help:              "help",
	ResearchQuery:     "research",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Intent is a classified message. Only the fields relevant to the Kind
// are populated; zero values mean "not provided".
type Intent struct {
	Kind Kind

	PaperRef   int    // 1-based paper reference
	NoteRef    int    // 1-based note reference (DeleteNote)
	Style      string // Raw style token; empty means caller default
	Text       string // Note text, research query, or ping argument
	ListName   string // Reading-list name
	MaxResults int    // FindRelated result cap; 0 means default

	// Usage carries a hint for Unrecognized intents caused by a
	// malformed command, e.g. wrong arity.
	Usage string
}
