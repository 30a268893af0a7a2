package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"scholarbot/internal/citation"
	"scholarbot/internal/intent"
	"scholarbot/internal/paper"
	"scholarbot/internal/session"
)

// fakeSearcher returns canned records, or an error when failing is set.
type fakeSearcher struct {
	records []paper.Record
	failing bool
	queries []string
}

func (f *fakeSearcher) Search(ctx context.Context, query string) ([]paper.Record, error) {
	f.queries = append(f.queries, query)
	if f.failing {
		return nil, fmt.Errorf("search backend down: %w", paper.ErrProviderUnavailable)
	}
	return f.records, nil
}

// fakeSummarizer returns a fixed narrative, or an error when failing.
type fakeSummarizer struct {
	summary string
	failing bool
}

func (f *fakeSummarizer) Summarize(ctx context.Context, query string, papers []*paper.Paper) (string, error) {
	if f.failing {
		return "", fmt.Errorf("model call failed: %w", paper.ErrProviderUnavailable)
	}
	return f.summary, nil
}

func sampleRecords() []paper.Record {
	return []paper.Record{
		{
			Title:   "Attention Is All You Need",
			Authors: []string{"Ashish Vaswani", "Noam Shazeer"},
			Year:    2017,
			Venue:   "NeurIPS",
			URL:     "https://example.org/attention",
		},
		{
			Title:   "Neural Attention Models Survey",
			Authors: []string{"Ashish Vaswani"},
			Year:    2019,
			URL:     "https://example.org/survey",
		},
		{
			Title: "Soil Chemistry Handbook",
			Year:  1984,
		},
	}
}

// newTestDispatcher wires a dispatcher over a fresh session manager
// with a successful fake search provider.
func newTestDispatcher(opts ...Option) (*Dispatcher, *fakeSearcher) {
	search := &fakeSearcher{records: sampleRecords()}
	all := append([]Option{WithSearcher(search)}, opts...)
	return New(session.NewManager(), all...), search
}

func handle(t *testing.T, d *Dispatcher, text string) string {
	t.Helper()
	return d.HandleMessage(context.Background(), "conv", text)
}

func TestPing(t *testing.T) {
	d, _ := newTestDispatcher()
	if got := handle(t, d, "!ping"); got != "Pong!" {
		t.Errorf("ping = %q, want Pong!", got)
	}
	if got := handle(t, d, "!ping hello"); got != "Pong! Your argument was hello" {
		t.Errorf("ping with text = %q", got)
	}
}

func TestResearchThenCite(t *testing.T) {
	d, search := newTestDispatcher()

	reply := handle(t, d, "find papers on attention mechanisms")
	if !strings.Contains(reply, "Found 3 papers:") {
		t.Fatalf("research reply = %q, want listing header", reply)
	}
	if !strings.Contains(reply, "1. Attention Is All You Need (2017)") {
		t.Errorf("research reply = %q, want numbered first paper", reply)
	}
	if !strings.Contains(reply, "https://example.org/attention") {
		t.Errorf("research reply = %q, want paper URL", reply)
	}
	if len(search.queries) != 1 || search.queries[0] != "find papers on attention mechanisms" {
		t.Errorf("search queries = %v, want the full message", search.queries)
	}

	cite := handle(t, d, "cite paper 1 in mla")
	if !strings.Contains(cite, `"Attention Is All You Need."`) {
		t.Errorf("cite reply = %q, want MLA-quoted title", cite)
	}
}

func TestResearchAccumulatesAcrossSearches(t *testing.T) {
	d, search := newTestDispatcher()

	handle(t, d, "!research attention")
	search.records = []paper.Record{{Title: "A Fourth Paper", Year: 2024}}
	reply := handle(t, d, "!research more")

	if !strings.Contains(reply, "4. A Fourth Paper") {
		t.Errorf("second search reply = %q, want index continuing at 4", reply)
	}

	papers := handle(t, d, "!papers")
	if !strings.Contains(papers, "1. Attention Is All You Need") || !strings.Contains(papers, "4. A Fourth Paper") {
		t.Errorf("papers listing = %q, want both searches' results", papers)
	}
}

func TestResearchWithSummarizer(t *testing.T) {
	d, _ := newTestDispatcher(WithSummarizer(&fakeSummarizer{summary: "These papers introduce attention."}))
	reply := handle(t, d, "!research attention")
	if !strings.Contains(reply, "These papers introduce attention.") {
		t.Errorf("reply = %q, want summary appended", reply)
	}

	// A failing summarizer degrades to the listing alone.
	d2, _ := newTestDispatcher(WithSummarizer(&fakeSummarizer{failing: true}))
	reply2 := handle(t, d2, "!research attention")
	if !strings.Contains(reply2, "Found 3 papers:") {
		t.Errorf("reply = %q, want raw listing despite summarizer failure", reply2)
	}
}

func TestResearchProviderFailures(t *testing.T) {
	noProvider := New(session.NewManager())
	reply := noProvider.HandleMessage(context.Background(), "conv", "!research attention")
	if !strings.Contains(reply, "Search is unavailable") {
		t.Errorf("reply without provider = %q", reply)
	}

	d, search := newTestDispatcher()
	handle(t, d, "!research attention")
	search.failing = true
	reply = handle(t, d, "!research more")
	if !strings.Contains(reply, "Search is unavailable") {
		t.Errorf("reply with failing provider = %q", reply)
	}
	// Earlier state survives the failure.
	if papers := handle(t, d, "!papers"); !strings.Contains(papers, "1. Attention Is All You Need") {
		t.Errorf("papers after failed search = %q, want prior results intact", papers)
	}
}

func TestBibliographyStylesAndDefault(t *testing.T) {
	d, _ := newTestDispatcher(WithDefaultStyle(citation.Harvard))
	handle(t, d, "!research attention")

	reply := handle(t, d, "!bibliography")
	if !strings.HasPrefix(reply, "Bibliography (Harvard):") {
		t.Errorf("reply = %q, want configured default style", reply)
	}

	reply = handle(t, d, "!bibliography ieee")
	if !strings.HasPrefix(reply, "Bibliography (IEEE):") || !strings.Contains(reply, "[1] ") {
		t.Errorf("reply = %q, want IEEE bracketed entries", reply)
	}

	reply = handle(t, d, "!bibliography klingon")
	if !strings.Contains(reply, `I don't know the citation style "klingon"`) {
		t.Errorf("reply = %q, want unsupported-style message", reply)
	}
	if !strings.Contains(reply, "Available citation styles: APA, MLA, Chicago, Harvard, IEEE") {
		t.Errorf("reply = %q, want style list appended", reply)
	}
}

func TestBibliographyEmpty(t *testing.T) {
	d, _ := newTestDispatcher()
	if got := handle(t, d, "!bibliography"); got != noPapersText {
		t.Errorf("empty bibliography = %q, want %q", got, noPapersText)
	}
	if got := handle(t, d, "!papers"); got != noPapersText {
		t.Errorf("empty papers = %q, want %q", got, noPapersText)
	}
}

func TestCiteUnknownPaper(t *testing.T) {
	d, _ := newTestDispatcher()
	handle(t, d, "!research attention")
	got := handle(t, d, "!cite 7")
	if got != "I don't see paper 7 — try !papers to list them." {
		t.Errorf("reply = %q", got)
	}
}

func TestNoteLifecycle(t *testing.T) {
	d, _ := newTestDispatcher()
	handle(t, d, "!research attention")

	reply := handle(t, d, "!add_note 1 Strong results on WMT14")
	if reply != "✓ Note 1 added to paper: Attention Is All You Need" {
		t.Errorf("add reply = %q", reply)
	}
	handle(t, d, "Add a note to paper 1: Revisit section 5")

	view := handle(t, d, "!view_notes 1")
	if !strings.Contains(view, "Research notes:") ||
		!strings.Contains(view, "Strong results on WMT14") ||
		!strings.Contains(view, "Revisit section 5") {
		t.Errorf("view reply = %q, want both notes", view)
	}

	reply = handle(t, d, "!delete_note 1 1")
	if reply != "✓ Note 1 deleted from paper: Attention Is All You Need" {
		t.Errorf("delete reply = %q", reply)
	}
	view = handle(t, d, "!view_notes 1")
	if strings.Contains(view, "Strong results on WMT14") {
		t.Errorf("view after delete = %q, deleted note still present", view)
	}
	if !strings.Contains(view, "1. [") {
		t.Errorf("view after delete = %q, want remaining note renumbered to 1", view)
	}

	if got := handle(t, d, "!delete_note 1 9"); !strings.Contains(got, "I don't see note 9 on paper 1") {
		t.Errorf("delete missing note = %q", got)
	}

	if got := handle(t, d, "!clear_notes 1"); got != "✓ All notes cleared for paper: Attention Is All You Need" {
		t.Errorf("clear reply = %q", got)
	}
	if got := handle(t, d, "!view_notes"); got != "No notes found." {
		t.Errorf("view after clear = %q", got)
	}
}

func TestReadingListLifecycle(t *testing.T) {
	d, _ := newTestDispatcher()
	handle(t, d, "!research attention")

	if got := handle(t, d, "!reading_list create Transformers"); got != `✓ Created reading list "Transformers".` {
		t.Errorf("create reply = %q", got)
	}
	if got := handle(t, d, "!reading_list create transformers"); got != `A reading list named "transformers" already exists.` {
		t.Errorf("duplicate create reply = %q", got)
	}

	if got := handle(t, d, "!reading_list add Transformers 1"); !strings.HasPrefix(got, "✓ Added paper 1") {
		t.Errorf("add reply = %q", got)
	}
	if got := handle(t, d, "!reading_list add Transformers 1"); got != `Paper 1 (Attention Is All You Need) is already on reading list "Transformers".` {
		t.Errorf("duplicate add reply = %q", got)
	}
	if got := handle(t, d, "!reading_list add Transformers 9"); !strings.Contains(got, "I don't see paper 9") {
		t.Errorf("add unknown paper reply = %q", got)
	}

	view := handle(t, d, "!reading_list view Transformers")
	if !strings.Contains(view, `Reading list "Transformers":`) || !strings.Contains(view, "1. Attention Is All You Need") {
		t.Errorf("view reply = %q", view)
	}

	overview := handle(t, d, "!reading_list view")
	if !strings.Contains(overview, "Transformers (1 paper)") {
		t.Errorf("overview reply = %q", overview)
	}

	if got := handle(t, d, "!reading_list remove Transformers 1"); !strings.HasPrefix(got, "✓ Removed paper 1") {
		t.Errorf("remove reply = %q", got)
	}
	if got := handle(t, d, "!reading_list remove Transformers 1"); got != `Paper 1 isn't on reading list "Transformers".` {
		t.Errorf("remove absent reply = %q", got)
	}

	if got := handle(t, d, "!reading_list delete Transformers"); got != `✓ Deleted reading list "Transformers".` {
		t.Errorf("delete reply = %q", got)
	}
	if got := handle(t, d, "!reading_list view Transformers"); !strings.Contains(got, `I don't have a reading list named "Transformers"`) {
		t.Errorf("view deleted list reply = %q", got)
	}
}

func TestDeletePaperCascades(t *testing.T) {
	d, _ := newTestDispatcher()
	handle(t, d, "!research attention")
	handle(t, d, "!reading_list create Keep")
	handle(t, d, "!reading_list add Keep 2")

	reply := handle(t, d, "!delete_paper 2")
	if reply != "✓ Removed paper 2 (Neural Attention Models Survey) from the bibliography and all reading lists." {
		t.Errorf("delete reply = %q", reply)
	}

	if got := handle(t, d, "!reading_list view Keep"); !strings.Contains(got, "is empty") {
		t.Errorf("list after cascade = %q, want empty list", got)
	}
	if got := handle(t, d, "!cite 2"); !strings.Contains(got, "I don't see paper 2") {
		t.Errorf("cite removed paper = %q", got)
	}
}

func TestFindRelated(t *testing.T) {
	d, _ := newTestDispatcher()
	handle(t, d, "!research attention")

	reply := handle(t, d, "!related 1")
	if !strings.Contains(reply, `Papers related to "Attention Is All You Need":`) {
		t.Fatalf("reply = %q, want related header", reply)
	}
	if !strings.Contains(reply, "2. Neural Attention Models Survey") {
		t.Errorf("reply = %q, want shared-author paper ranked", reply)
	}
	if strings.Contains(reply, "1. Attention Is All You Need —") {
		t.Errorf("reply = %q, target paper listed as related to itself", reply)
	}
	if !strings.Contains(reply, "%") {
		t.Errorf("reply = %q, want percentage scores", reply)
	}
}

func TestReset(t *testing.T) {
	d, _ := newTestDispatcher()
	handle(t, d, "!research attention")
	handle(t, d, "!reading_list create Keep")

	reply := handle(t, d, "!reset")
	if !strings.Contains(reply, "Session cleared") {
		t.Errorf("reset reply = %q", reply)
	}
	if got := handle(t, d, "!papers"); got != noPapersText {
		t.Errorf("papers after reset = %q", got)
	}

	// Fresh session; indices restart at 1.
	reply = handle(t, d, "!research attention")
	if !strings.Contains(reply, "1. Attention Is All You Need") {
		t.Errorf("research after reset = %q, want indices from 1", reply)
	}
}

func TestConversationIsolation(t *testing.T) {
	d, _ := newTestDispatcher()
	d.HandleMessage(context.Background(), "alpha", "!research attention")

	got := d.HandleMessage(context.Background(), "beta", "!papers")
	if got != noPapersText {
		t.Errorf("beta papers = %q, want empty conversation", got)
	}
}

func TestUnrecognizedAndUsage(t *testing.T) {
	d, _ := newTestDispatcher()

	if got := handle(t, d, "!cite"); got != "Usage: !cite <paper> [style]" {
		t.Errorf("malformed command reply = %q", got)
	}
	if got := handle(t, d, "good morning"); !strings.Contains(got, "!help") {
		t.Errorf("unrecognized reply = %q, want help hint", got)
	}
	if got := handle(t, d, "!help"); !strings.Contains(got, "!bibliography [style]") {
		t.Errorf("help reply = %q", got)
	}
	if got := handle(t, d, "!citation_styles"); got != "Available citation styles: APA, MLA, Chicago, Harvard, IEEE" {
		t.Errorf("styles reply = %q", got)
	}
}

func TestRenderErrorUnclassified(t *testing.T) {
	d, _ := newTestDispatcher()
	got := d.renderError(errors.New("disk on fire"), intent.Intent{})
	if got != "Something went wrong handling that request." {
		t.Errorf("renderError = %q", got)
	}
}
