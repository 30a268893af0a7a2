package intent

import "strings"

// Marker is the command prefix character.
const Marker = "!"

// Usage hints rendered when a prefixed command has malformed arguments.
var usages = map[string]string{
	"ping":            "!ping [text]",
	"cite":            "!cite <paper> [style]",
	"bibliography":    "!bibliography [style]",
	"papers":          "!papers",
	"citation_styles": "!citation_styles",
	"add_note":        "!add_note <paper> <text>",
	"view_notes":      "!view_notes [paper]",
	"delete_note":     "!delete_note <paper> <note>",
	"clear_notes":     "!clear_notes [paper]",
	"reading_list":    "!reading_list <create|add|view|remove|delete> [name] [paper]",
	"related":         "!related <paper> [max]",
	"delete_paper":    "!delete_paper <paper>",
	"reset":           "!reset",
	"research":        "!research <query>",
	"help":            "!help",
}

// Classify parses a raw message into an Intent. Prefixed commands are
// tried first; anything else goes through the free-text matchers.
func Classify(message string) Intent {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return Intent{Kind: Unrecognized}
	}
	if strings.HasPrefix(msg, Marker) {
		return classifyCommand(strings.TrimPrefix(msg, Marker))
	}
	return classifyFreeText(msg)
}

// malformed builds the Unrecognized intent for a bad command invocation.
func malformed(verb string) Intent {
	return Intent{Kind: Unrecognized, Usage: "Usage: " + usages[verb]}
}

func classifyCommand(body string) Intent {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return Intent{Kind: Unrecognized, Usage: "Usage: !help for the command list"}
	}

	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "ping":
		return Intent{Kind: Ping, Text: strings.Join(args, " ")}

	case "cite":
		if len(args) < 1 || len(args) > 2 {
			return malformed(verb)
		}
		ref, ok := atoiRef(args[0])
		if !ok {
			return malformed(verb)
		}
		in := Intent{Kind: Cite, PaperRef: ref}
		if len(args) == 2 {
			in.Style = args[1]
		}
		return in

	case "bibliography":
		if len(args) > 1 {
			return malformed(verb)
		}
		in := Intent{Kind: ShowBibliography}
		if len(args) == 1 {
			in.Style = args[0]
		}
		return in

	case "papers":
		return Intent{Kind: ListPapers}

	case "citation_styles":
		return Intent{Kind: ListStyles}

	case "add_note":
		if len(args) < 2 {
			return malformed(verb)
		}
		ref, ok := atoiRef(args[0])
		if !ok {
			return malformed(verb)
		}
		return Intent{Kind: AddNote, PaperRef: ref, Text: strings.Join(args[1:], " ")}

	case "view_notes":
		if len(args) > 1 {
			return malformed(verb)
		}
		in := Intent{Kind: ViewNotes}
		if len(args) == 1 {
			ref, ok := atoiRef(args[0])
			if !ok {
				return malformed(verb)
			}
			in.PaperRef = ref
		}
		return in

	case "delete_note":
		if len(args) != 2 {
			return malformed(verb)
		}
		paperRef, ok1 := atoiRef(args[0])
		noteRef, ok2 := atoiRef(args[1])
		if !ok1 || !ok2 {
			return malformed(verb)
		}
		return Intent{Kind: DeleteNote, PaperRef: paperRef, NoteRef: noteRef}

	case "clear_notes":
		if len(args) > 1 {
			return malformed(verb)
		}
		in := Intent{Kind: ClearNotes}
		if len(args) == 1 {
			ref, ok := atoiRef(args[0])
			if !ok {
				return malformed(verb)
			}
			in.PaperRef = ref
		}
		return in

	case "reading_list":
		return classifyReadingList(args)

	case "related":
		if len(args) < 1 || len(args) > 2 {
			return malformed(verb)
		}
		ref, ok := atoiRef(args[0])
		if !ok {
			return malformed(verb)
		}
		in := Intent{Kind: FindRelated, PaperRef: ref}
		if len(args) == 2 {
			if max, ok := atoiRef(args[1]); ok {
				in.MaxResults = max
			} else {
				return malformed(verb)
			}
		}
		return in

	case "delete_paper":
		if len(args) != 1 {
			return malformed(verb)
		}
		ref, ok := atoiRef(args[0])
		if !ok {
			return malformed(verb)
		}
		return Intent{Kind: DeletePaper, PaperRef: ref}

	case "reset":
		return Intent{Kind: Reset}

	case "research":
		if len(args) == 0 {
			return malformed(verb)
		}
		return Intent{Kind: ResearchQuery, Text: strings.Join(args, " ")}

	case "help":
		return Intent{Kind: Help}
	}

	return Intent{Kind: Unrecognized, Usage: "Unknown command !" + verb + " — try !help"}
}

func classifyReadingList(args []string) Intent {
	if len(args) == 0 {
		return malformed("reading_list")
	}

	sub := strings.ToLower(args[0])
	rest := args[1:]

	switch sub {
	case "create":
		if len(rest) != 1 {
			return malformed("reading_list")
		}
		return Intent{Kind: ReadingListCreate, ListName: rest[0]}

	case "add", "remove":
		if len(rest) != 2 {
			return malformed("reading_list")
		}
		ref, ok := atoiRef(rest[1])
		if !ok {
			return malformed("reading_list")
		}
		kind := ReadingListAdd
		if sub == "remove" {
			kind = ReadingListRemove
		}
		return Intent{Kind: kind, ListName: rest[0], PaperRef: ref}

	case "view":
		if len(rest) > 1 {
			return malformed("reading_list")
		}
		in := Intent{Kind: ReadingListView}
		if len(rest) == 1 {
			in.ListName = rest[0]
		}
		return in

	case "delete":
		if len(rest) != 1 {
			return malformed("reading_list")
		}
		return Intent{Kind: ReadingListDelete, ListName: rest[0]}
	}

	return malformed("reading_list")
}
