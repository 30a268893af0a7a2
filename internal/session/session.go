// Package session holds per-conversation state: the paper registry and
// the named reading lists. Sessions are created lazily by the Manager
// and live for the process lifetime.
package session

import (
	"fmt"
	"strings"
	"sync"

	"scholarbot/internal/paper"
	"scholarbot/internal/registry"
)

// ReadingList is a named, ordered, duplicate-free collection of paper
// indices. Names are case-insensitively unique within a session.
type ReadingList struct {
	Name   string `json:"name"`   // Display form, as first created
	Papers []int  `json:"papers"` // Registry indices, insertion order
}

// Contains reports whether the list references the given paper index.
func (l *ReadingList) Contains(index int) bool {
	for _, idx := range l.Papers {
		if idx == index {
			return true
		}
	}
	return false
}

// Session is the per-conversation aggregate. Methods are not locked;
// callers serialize access through Lock/Unlock, one logical owner per
// request.
type Session struct {
	mu sync.Mutex

	ID       string
	Registry *registry.Registry

	lists map[string]*ReadingList // Keyed by lower-cased name
	order []string                // Creation order of list keys
}

// New creates an empty session for a conversation id.
func New(id string) *Session {
	return &Session{
		ID:       id,
		Registry: registry.New(),
		lists:    make(map[string]*ReadingList),
	}
}

// Lock acquires the session for one request.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

func listKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CreateList creates a new, empty reading list.
func (s *Session) CreateList(name string) error {
	key := listKey(name)
	if key == "" {
		return fmt.Errorf("reading-list name must not be empty: %w", paper.ErrInvalidArgument)
	}
	if _, exists := s.lists[key]; exists {
		return fmt.Errorf("reading list %q: %w", name, paper.ErrDuplicateName)
	}
	s.lists[key] = &ReadingList{Name: strings.TrimSpace(name)}
	s.order = append(s.order, key)
	return nil
}

// List returns a reading list by name (case-insensitive).
func (s *Session) List(name string) (*ReadingList, error) {
	l, ok := s.lists[listKey(name)]
	if !ok {
		return nil, fmt.Errorf("reading list %q: %w", name, paper.ErrNotFound)
	}
	return l, nil
}

// Lists returns all reading lists in creation order.
func (s *Session) Lists() []*ReadingList {
	out := make([]*ReadingList, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.lists[key])
	}
	return out
}

// AddToList appends a paper to a list. The paper must exist in the
// registry. Adding a paper already on the list is a no-op; added
// reports whether the list changed.
func (s *Session) AddToList(name string, paperIndex int) (added bool, err error) {
	l, err := s.List(name)
	if err != nil {
		return false, err
	}
	if _, err := s.Registry.Get(paperIndex); err != nil {
		return false, err
	}
	if l.Contains(paperIndex) {
		return false, nil
	}
	l.Papers = append(l.Papers, paperIndex)
	return true, nil
}

// RemoveFromList removes a paper from a list.
func (s *Session) RemoveFromList(name string, paperIndex int) error {
	l, err := s.List(name)
	if err != nil {
		return err
	}
	for i, idx := range l.Papers {
		if idx == paperIndex {
			l.Papers = append(l.Papers[:i], l.Papers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("paper %d not on reading list %q: %w", paperIndex, name, paper.ErrNotFound)
}

// DeleteList removes a reading list entirely.
func (s *Session) DeleteList(name string) error {
	key := listKey(name)
	if _, ok := s.lists[key]; !ok {
		return fmt.Errorf("reading list %q: %w", name, paper.ErrNotFound)
	}
	delete(s.lists, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// RestoreList reinstalls an archived reading list without paper
// validation; the registry is assumed to have been restored first.
func (s *Session) RestoreList(name string, papers []int) {
	key := listKey(name)
	if _, exists := s.lists[key]; exists {
		return
	}
	s.lists[key] = &ReadingList{Name: strings.TrimSpace(name), Papers: papers}
	s.order = append(s.order, key)
}

// RemovePaper deletes a paper from the registry and cascades the
// removal through every reading list referencing it. The freed index
// is never reused.
func (s *Session) RemovePaper(index int) error {
	if err := s.Registry.Remove(index); err != nil {
		return err
	}
	for _, key := range s.order {
		l := s.lists[key]
		for i, idx := range l.Papers {
			if idx == index {
				l.Papers = append(l.Papers[:i], l.Papers[i+1:]...)
				break
			}
		}
	}
	return nil
}

// Reset discards all session state, returning it to the empty,
// just-created condition.
func (s *Session) Reset() {
	s.Registry = registry.New()
	s.lists = make(map[string]*ReadingList)
	s.order = nil
}
