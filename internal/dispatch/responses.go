package dispatch

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"scholarbot/internal/citation"
	"scholarbot/internal/intent"
	"scholarbot/internal/paper"
	"scholarbot/internal/session"
)

const noPapersText = "No papers have been cited in this conversation yet — ask a research question to find some."

func availableStyles() string {
	names := make([]string, 0, len(citation.Styles()))
	for _, s := range citation.Styles() {
		names = append(names, s.Display())
	}
	return "Available citation styles: " + strings.Join(names, ", ")
}

func helpText() string {
	return strings.Join([]string{
		"Commands:",
		"  !cite <paper> [style]        — format one citation",
		"  !bibliography [style]        — show the full bibliography",
		"  !papers                      — list cited papers",
		"  !citation_styles             — list citation styles",
		"  !add_note <paper> <text>     — attach a note to a paper",
		"  !view_notes [paper]          — show notes",
		"  !delete_note <paper> <note>  — delete one note",
		"  !clear_notes [paper]         — clear notes",
		"  !reading_list create|add|view|remove|delete ...",
		"  !related <paper> [max]       — find related papers",
		"  !delete_paper <paper>        — drop a paper (and its list entries)",
		"  !research <query>            — search for papers",
		"  !reset                       — clear this conversation's state",
		"You can also just ask in plain words.",
	}, "\n")
}

// paperLine is the one-line summary used by paper listings.
func paperLine(p *paper.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s", p.Index, p.Title)
	if p.HasYear() {
		fmt.Fprintf(&b, " (%d)", p.Year)
	}
	if len(p.Authors) > 0 {
		fmt.Fprintf(&b, " — %s", strings.Join(p.Authors, ", "))
	}
	if p.Citations > 0 {
		fmt.Fprintf(&b, " [%d citations]", p.Citations)
	}
	return b.String()
}

func (d *Dispatcher) cite(sess *session.Session, in intent.Intent) string {
	style, err := d.style(in)
	if err != nil {
		return d.renderError(err, in)
	}
	p, err := sess.Registry.Get(in.PaperRef)
	if err != nil {
		return d.renderError(err, in)
	}
	entry, err := citation.Format(p, style)
	if err != nil {
		return d.renderError(err, in)
	}
	return entry
}

func (d *Dispatcher) bibliography(sess *session.Session, in intent.Intent) string {
	style, err := d.style(in)
	if err != nil {
		return d.renderError(err, in)
	}
	papers := sess.Registry.List()
	if len(papers) == 0 {
		return noPapersText
	}
	entries, err := citation.FormatBibliography(papers, style)
	if err != nil {
		return d.renderError(err, in)
	}
	return fmt.Sprintf("Bibliography (%s):\n\n%s", style.Display(), strings.Join(entries, "\n\n"))
}

func (d *Dispatcher) listPapers(sess *session.Session) string {
	papers := sess.Registry.List()
	if len(papers) == 0 {
		return noPapersText
	}
	lines := make([]string, 0, len(papers)+1)
	lines = append(lines, "Papers in this conversation:")
	for _, p := range papers {
		lines = append(lines, paperLine(p))
	}
	return strings.Join(lines, "\n")
}

func (d *Dispatcher) addNote(sess *session.Session, in intent.Intent) string {
	noteIndex, err := sess.Registry.AddNote(in.PaperRef, in.Text)
	if err != nil {
		return d.renderError(err, in)
	}
	p, _ := sess.Registry.Get(in.PaperRef)
	return fmt.Sprintf("✓ Note %d added to paper: %s", noteIndex, p.Title)
}

func (d *Dispatcher) viewNotes(sess *session.Session, in intent.Intent) string {
	var papers []*paper.Paper
	if in.PaperRef > 0 {
		p, err := sess.Registry.Get(in.PaperRef)
		if err != nil {
			return d.renderError(err, in)
		}
		papers = []*paper.Paper{p}
	} else {
		papers = sess.Registry.List()
	}

	var b strings.Builder
	b.WriteString("Research notes:\n")
	found := false
	for _, p := range papers {
		if len(p.Notes) == 0 {
			continue
		}
		found = true
		fmt.Fprintf(&b, "\nPaper %d: %s\n", p.Index, p.Title)
		for _, n := range p.Notes {
			fmt.Fprintf(&b, "  %d. [%s] %s\n", n.Index, n.Created.Format("2006-01-02 15:04"), n.Text)
		}
	}
	if !found {
		return "No notes found."
	}
	return strings.TrimRight(b.String(), "\n")
}

func (d *Dispatcher) deleteNote(sess *session.Session, in intent.Intent) string {
	if err := sess.Registry.DeleteNote(in.PaperRef, in.NoteRef); err != nil {
		return d.renderError(err, in)
	}
	p, _ := sess.Registry.Get(in.PaperRef)
	return fmt.Sprintf("✓ Note %d deleted from paper: %s", in.NoteRef, p.Title)
}

func (d *Dispatcher) clearNotes(sess *session.Session, in intent.Intent) string {
	if err := sess.Registry.ClearNotes(in.PaperRef); err != nil {
		return d.renderError(err, in)
	}
	if in.PaperRef > 0 {
		p, _ := sess.Registry.Get(in.PaperRef)
		return fmt.Sprintf("✓ All notes cleared for paper: %s", p.Title)
	}
	return "✓ All research notes have been cleared."
}

func (d *Dispatcher) listCreate(sess *session.Session, in intent.Intent) string {
	if err := sess.CreateList(in.ListName); err != nil {
		return d.renderError(err, in)
	}
	return fmt.Sprintf("✓ Created reading list %q.", in.ListName)
}

func (d *Dispatcher) listAdd(sess *session.Session, in intent.Intent) string {
	added, err := sess.AddToList(in.ListName, in.PaperRef)
	if err != nil {
		return d.renderError(err, in)
	}
	p, _ := sess.Registry.Get(in.PaperRef)
	if !added {
		return fmt.Sprintf("Paper %d (%s) is already on reading list %q.", in.PaperRef, p.Title, in.ListName)
	}
	return fmt.Sprintf("✓ Added paper %d (%s) to reading list %q.", in.PaperRef, p.Title, in.ListName)
}

func (d *Dispatcher) listView(sess *session.Session, in intent.Intent) string {
	if in.ListName == "" {
		lists := sess.Lists()
		if len(lists) == 0 {
			return "No reading lists yet — create one with !reading_list create <name>."
		}
		lines := []string{"Reading lists:"}
		for _, l := range lists {
			noun := "papers"
			if len(l.Papers) == 1 {
				noun = "paper"
			}
			lines = append(lines, fmt.Sprintf("  %s (%d %s)", l.Name, len(l.Papers), noun))
		}
		lines = append(lines, "Use !reading_list view <name> to see a list's papers.")
		return strings.Join(lines, "\n")
	}

	l, err := sess.List(in.ListName)
	if err != nil {
		return d.renderError(err, in)
	}
	if len(l.Papers) == 0 {
		return fmt.Sprintf("Reading list %q is empty.", l.Name)
	}

	lines := []string{fmt.Sprintf("Reading list %q:", l.Name)}
	for _, idx := range l.Papers {
		if p, err := sess.Registry.Get(idx); err == nil {
			lines = append(lines, paperLine(p))
		}
	}
	return strings.Join(lines, "\n")
}

func (d *Dispatcher) listRemove(sess *session.Session, in intent.Intent) string {
	if err := sess.RemoveFromList(in.ListName, in.PaperRef); err != nil {
		return d.renderError(err, in)
	}
	return fmt.Sprintf("✓ Removed paper %d from reading list %q.", in.PaperRef, in.ListName)
}

func (d *Dispatcher) listDelete(sess *session.Session, in intent.Intent) string {
	if err := sess.DeleteList(in.ListName); err != nil {
		return d.renderError(err, in)
	}
	return fmt.Sprintf("✓ Deleted reading list %q.", in.ListName)
}

func (d *Dispatcher) findRelated(sess *session.Session, in intent.Intent) string {
	target, err := sess.Registry.Get(in.PaperRef)
	if err != nil {
		return d.renderError(err, in)
	}

	limit := in.MaxResults
	if limit <= 0 {
		limit = d.maxRelated
	}
	results := d.scorer.FindRelated(target, sess.Registry.List(), limit)
	if len(results) == 0 {
		return fmt.Sprintf("No related papers found for paper %d (%s).", target.Index, target.Title)
	}

	lines := []string{fmt.Sprintf("Papers related to %q:", target.Title)}
	for _, r := range results {
		line := fmt.Sprintf("  %d. %s — %d%%", r.Paper.Index, r.Paper.Title, r.Score)
		if len(r.Reasons) > 0 {
			line += " (" + strings.Join(r.Reasons, "; ") + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (d *Dispatcher) deletePaper(sess *session.Session, in intent.Intent) string {
	p, err := sess.Registry.Get(in.PaperRef)
	if err != nil {
		return d.renderError(err, in)
	}
	title := p.Title
	if err := sess.RemovePaper(in.PaperRef); err != nil {
		return d.renderError(err, in)
	}
	return fmt.Sprintf("✓ Removed paper %d (%s) from the bibliography and all reading lists.", in.PaperRef, title)
}

func (d *Dispatcher) research(ctx context.Context, sess *session.Session, in intent.Intent) string {
	if d.search == nil {
		return d.renderError(fmt.Errorf("no search provider configured: %w", paper.ErrProviderUnavailable), in)
	}

	records, err := d.search.Search(ctx, in.Text)
	if err != nil {
		d.log.Warn("search provider failed", zap.Error(err))
		return d.renderError(fmt.Errorf("search failed: %w", paper.ErrProviderUnavailable), in)
	}
	if len(records) == 0 {
		return fmt.Sprintf("0 results found for %q.", in.Text)
	}

	var found []*paper.Paper
	for _, rec := range records {
		index, err := sess.Registry.AddPaper(rec)
		if err != nil {
			continue // Skip malformed records, keep the rest
		}
		p, _ := sess.Registry.Get(index)
		found = append(found, p)
	}
	if len(found) == 0 {
		return fmt.Sprintf("0 results found for %q.", in.Text)
	}

	lines := make([]string, 0, len(found)+2)
	lines = append(lines, fmt.Sprintf("Found %d papers:", len(found)))
	for _, p := range found {
		lines = append(lines, paperLine(p))
		if p.URL != "" {
			lines = append(lines, "   "+p.URL)
		}
	}
	listing := strings.Join(lines, "\n")

	if d.summarizer != nil {
		if summary, err := d.summarizer.Summarize(ctx, in.Text, found); err == nil && summary != "" {
			return listing + "\n\n" + summary
		} else if err != nil {
			// Degrade to the raw listing without a narrative.
			d.log.Warn("summarizer failed", zap.Error(err))
		}
	}
	return listing
}
