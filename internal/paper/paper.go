// Package paper defines the core domain types for the bibliography engine.
package paper

import "time"

// Paper represents an academic paper tracked in a conversation.
type Paper struct {
	// Index is the 1-based registry index. It is assigned at insertion
	// time and never reused within a session, even after deletion.
	Index int `json:"index"`

	Title     string   `json:"title"`
	Authors   []string `json:"authors"` // Insertion order = listed order
	Year      int      `json:"year"`    // 0 if unknown
	Venue     string   `json:"venue,omitempty"`
	URL       string   `json:"url,omitempty"`
	Abstract  string   `json:"abstract,omitempty"`
	Citations int      `json:"citations,omitempty"` // Citation count from the search provider

	Notes []Note `json:"notes,omitempty"`
}

// Note is an annotation attached to a paper. Note indices are 1-based
// and local to the owning paper; they are renumbered to stay dense when
// a note is deleted.
type Note struct {
	Index   int       `json:"index"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

// Record is a paper as returned by the search provider, before it is
// assigned a registry index.
type Record struct {
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Year      int      `json:"year"`
	Venue     string   `json:"venue,omitempty"`
	URL       string   `json:"url,omitempty"`
	Abstract  string   `json:"abstract,omitempty"`
	Citations int      `json:"citations,omitempty"`
}

// HasYear reports whether the publication year is known.
func (p *Paper) HasYear() bool {
	return p.Year > 0
}
