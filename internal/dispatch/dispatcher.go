// Package dispatch orchestrates a request: classify the message, run
// the matching operation against the conversation's session, and render
// the outcome as response text. It is the single point where domain
// failures become user-facing messages; nothing propagates past it.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"scholarbot/internal/citation"
	"scholarbot/internal/intent"
	"scholarbot/internal/paper"
	"scholarbot/internal/related"
	"scholarbot/internal/session"
)

// Searcher is the external academic search provider.
type Searcher interface {
	Search(ctx context.Context, query string) ([]paper.Record, error)
}

// Summarizer is the optional language-model backend that narrates
// search results. Failures degrade to the raw paper listing.
type Summarizer interface {
	Summarize(ctx context.Context, query string, papers []*paper.Paper) (string, error)
}

// Dispatcher routes classified intents to the registry, formatter, and
// scorer, and renders responses.
type Dispatcher struct {
	sessions     *session.Manager
	scorer       *related.Scorer
	search       Searcher
	summarizer   Summarizer
	defaultStyle citation.Style
	maxRelated   int
	log          *zap.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSearcher sets the search provider.
func WithSearcher(s Searcher) Option {
	return func(d *Dispatcher) { d.search = s }
}

// WithSummarizer sets the language-model backend.
func WithSummarizer(s Summarizer) Option {
	return func(d *Dispatcher) { d.summarizer = s }
}

// WithScorer sets the similarity scorer.
func WithScorer(s *related.Scorer) Option {
	return func(d *Dispatcher) { d.scorer = s }
}

// WithDefaultStyle sets the style used when a message names none.
func WithDefaultStyle(s citation.Style) Option {
	return func(d *Dispatcher) { d.defaultStyle = s }
}

// WithMaxRelated sets the related-paper result cap used when a message
// names none.
func WithMaxRelated(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxRelated = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// New creates a dispatcher over a session manager.
func New(sessions *session.Manager, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sessions:     sessions,
		scorer:       related.NewScorer(related.DefaultWeights()),
		defaultStyle: citation.APA,
		maxRelated:   related.DefaultMaxResults,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HandleMessage processes one message for a conversation and returns
// the response text. The conversation's session is held exclusively for
// the duration of the request.
func (d *Dispatcher) HandleMessage(ctx context.Context, conversationID, text string) string {
	sess := d.sessions.Get(conversationID)
	sess.Lock()
	defer sess.Unlock()

	in := intent.Classify(text)
	d.log.Debug("classified message",
		zap.String("conversation", conversationID),
		zap.String("intent", in.Kind.String()))

	switch in.Kind {
	case intent.Ping:
		if in.Text == "" {
			return "Pong!"
		}
		return fmt.Sprintf("Pong! Your argument was %s", in.Text)

	case intent.Cite:
		return d.cite(sess, in)

	case intent.ShowBibliography:
		return d.bibliography(sess, in)

	case intent.ListPapers:
		return d.listPapers(sess)

	case intent.ListStyles:
		return availableStyles()

	case intent.AddNote:
		return d.addNote(sess, in)

	case intent.ViewNotes:
		return d.viewNotes(sess, in)

	case intent.DeleteNote:
		return d.deleteNote(sess, in)

	case intent.ClearNotes:
		return d.clearNotes(sess, in)

	case intent.ReadingListCreate:
		return d.listCreate(sess, in)

	case intent.ReadingListAdd:
		return d.listAdd(sess, in)

	case intent.ReadingListView:
		return d.listView(sess, in)

	case intent.ReadingListRemove:
		return d.listRemove(sess, in)

	case intent.ReadingListDelete:
		return d.listDelete(sess, in)

	case intent.FindRelated:
		return d.findRelated(sess, in)

	case intent.DeletePaper:
		return d.deletePaper(sess, in)

	case intent.Reset:
		sess.Reset()
		return "Session cleared — the bibliography, notes, and reading lists are gone."

	case intent.Help:
		return helpText()

	case intent.ResearchQuery:
		return d.research(ctx, sess, in)
	}

	if in.Usage != "" {
		return in.Usage
	}
	return "I didn't catch that — ask a research question, or try !help for commands."
}

// style resolves the intent's style token, falling back to the
// configured default when none was given.
func (d *Dispatcher) style(in intent.Intent) (citation.Style, error) {
	if in.Style == "" {
		return d.defaultStyle, nil
	}
	return citation.ParseStyle(in.Style)
}

// renderError maps a classified domain failure onto user-facing text.
// Session state is untouched whenever an error reaches this point.
func (d *Dispatcher) renderError(err error, in intent.Intent) string {
	switch {
	case errors.Is(err, paper.ErrNotFound):
		return notFoundText(err, in)
	case errors.Is(err, paper.ErrUnsupportedStyle):
		return fmt.Sprintf("I don't know the citation style %q. %s", in.Style, availableStyles())
	case errors.Is(err, paper.ErrDuplicateName):
		return fmt.Sprintf("A reading list named %q already exists.", in.ListName)
	case errors.Is(err, paper.ErrInvalidArgument):
		return "That doesn't look right: " + reasonText(err)
	case errors.Is(err, paper.ErrProviderUnavailable):
		return "Search is unavailable right now — please try again in a moment."
	}
	d.log.Warn("unclassified error reached dispatcher", zap.Error(err))
	return "Something went wrong handling that request."
}

func notFoundText(err error, in intent.Intent) string {
	msg := reasonText(err)
	switch {
	case strings.HasPrefix(msg, "note"):
		return fmt.Sprintf("I don't see note %d on paper %d — try !view_notes %d.", in.NoteRef, in.PaperRef, in.PaperRef)
	case strings.HasPrefix(msg, "reading list"):
		return fmt.Sprintf("I don't have a reading list named %q — try !reading_list view.", in.ListName)
	case strings.HasPrefix(msg, "paper") && strings.Contains(msg, "reading list"):
		return fmt.Sprintf("Paper %d isn't on reading list %q.", in.PaperRef, in.ListName)
	default:
		return fmt.Sprintf("I don't see paper %d — try !papers to list them.", in.PaperRef)
	}
}

// reasonText strips the sentinel suffix from a wrapped error, leaving
// the descriptive prefix.
func reasonText(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i > 0 {
		return msg[:i]
	}
	return msg
}
