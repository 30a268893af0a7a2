// Package registry implements the per-conversation paper registry that
// owns papers and their notes.
package registry

import (
	"fmt"
	"strings"
	"time"

	"scholarbot/internal/paper"
)

// timeNow is overridable in tests.
var timeNow = time.Now

// Registry is the canonical store of papers discovered in a
// conversation, in registration order. It is not safe for concurrent
// use; the owning session serializes access.
type Registry struct {
	papers    []*paper.Paper
	nextIndex int // Next index to assign; starts at 1, never reused
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{nextIndex: 1}
}

// AddPaper appends a paper from a search record and returns its
// assigned index. Indices are strictly increasing within a session.
func (r *Registry) AddPaper(rec paper.Record) (int, error) {
	if strings.TrimSpace(rec.Title) == "" {
		return 0, fmt.Errorf("paper title must not be empty: %w", paper.ErrInvalidArgument)
	}

	p := &paper.Paper{
		Index:     r.nextIndex,
		Title:     strings.TrimSpace(rec.Title),
		Authors:   rec.Authors,
		Year:      rec.Year,
		Venue:     rec.Venue,
		URL:       rec.URL,
		Abstract:  rec.Abstract,
		Citations: rec.Citations,
	}
	r.papers = append(r.papers, p)
	r.nextIndex++
	return p.Index, nil
}

// Restore reinstalls previously archived papers, preserving their
// indices. The next assigned index continues past the highest restored
// one so the never-reused invariant survives a reload.
func (r *Registry) Restore(papers []*paper.Paper) {
	r.papers = papers
	r.nextIndex = 1
	for _, p := range papers {
		if p.Index >= r.nextIndex {
			r.nextIndex = p.Index + 1
		}
	}
}

// Get returns the paper with the given index.
func (r *Registry) Get(index int) (*paper.Paper, error) {
	for _, p := range r.papers {
		if p.Index == index {
			return p, nil
		}
	}
	return nil, fmt.Errorf("paper %d: %w", index, paper.ErrNotFound)
}

// List returns all papers in registration order. The returned slice is
// shared with the registry and must not be mutated.
func (r *Registry) List() []*paper.Paper {
	return r.papers
}

// Len returns the number of registered papers.
func (r *Registry) Len() int {
	return len(r.papers)
}

// Remove deletes the paper with the given index. The freed index is
// never reassigned. The caller is responsible for cascading cleanup of
// reading lists that reference the paper.
func (r *Registry) Remove(index int) error {
	for i, p := range r.papers {
		if p.Index == index {
			r.papers = append(r.papers[:i], r.papers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("paper %d: %w", index, paper.ErrNotFound)
}

// AddNote appends a note to a paper and returns the note's 1-based
// local index.
func (r *Registry) AddNote(paperIndex int, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("note text must not be empty: %w", paper.ErrInvalidArgument)
	}

	p, err := r.Get(paperIndex)
	if err != nil {
		return 0, err
	}

	note := paper.Note{
		Index:   len(p.Notes) + 1,
		Text:    strings.TrimSpace(text),
		Created: timeNow(),
	}
	p.Notes = append(p.Notes, note)
	return note.Index, nil
}

// DeleteNote removes a note from a paper and renumbers the remaining
// notes so their indices stay dense, starting at 1.
func (r *Registry) DeleteNote(paperIndex, noteIndex int) error {
	p, err := r.Get(paperIndex)
	if err != nil {
		return err
	}

	if noteIndex < 1 || noteIndex > len(p.Notes) {
		return fmt.Errorf("note %d on paper %d: %w", noteIndex, paperIndex, paper.ErrNotFound)
	}

	p.Notes = append(p.Notes[:noteIndex-1], p.Notes[noteIndex:]...)
	for i := range p.Notes {
		p.Notes[i].Index = i + 1
	}
	return nil
}

// ClearNotes removes all notes from one paper, or from every paper when
// paperIndex is 0.
func (r *Registry) ClearNotes(paperIndex int) error {
	if paperIndex == 0 {
		for _, p := range r.papers {
			p.Notes = nil
		}
		return nil
	}

	p, err := r.Get(paperIndex)
	if err != nil {
		return err
	}
	p.Notes = nil
	return nil
}
