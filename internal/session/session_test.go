package session

import (
	"errors"
	"testing"

	"scholarbot/internal/paper"
)

func newSessionWithPapers(t *testing.T, titles ...string) *Session {
	t.Helper()
	s := New("test")
	for _, title := range titles {
		if _, err := s.Registry.AddPaper(paper.Record{Title: title}); err != nil {
			t.Fatalf("AddPaper(%q): %v", title, err)
		}
	}
	return s
}

func TestCreateListCaseInsensitiveUniqueness(t *testing.T) {
	s := New("test")
	if err := s.CreateList("Quantum Computing"); err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if err := s.CreateList("quantum computing"); !errors.Is(err, paper.ErrDuplicateName) {
		t.Errorf("duplicate CreateList: err = %v, want ErrDuplicateName", err)
	}
	if err := s.CreateList("  "); !errors.Is(err, paper.ErrInvalidArgument) {
		t.Errorf("blank CreateList: err = %v, want ErrInvalidArgument", err)
	}

	// Lookup works under any casing; the display name keeps the
	// original form.
	l, err := s.List("QUANTUM COMPUTING")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if l.Name != "Quantum Computing" {
		t.Errorf("display name = %q, want original casing", l.Name)
	}
}

func TestAddToListDuplicateIsNoOp(t *testing.T) {
	s := newSessionWithPapers(t, "A", "B")
	if err := s.CreateList("ML"); err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	added, err := s.AddToList("ML", 1)
	if err != nil || !added {
		t.Fatalf("first add = (%v, %v), want (true, nil)", added, err)
	}
	added, err = s.AddToList("ml", 1)
	if err != nil {
		t.Fatalf("duplicate add: %v", err)
	}
	if added {
		t.Error("duplicate add reported added = true, want no-op")
	}

	l, _ := s.List("ML")
	if len(l.Papers) != 1 {
		t.Errorf("list papers = %v, want exactly one entry", l.Papers)
	}

	if _, err := s.AddToList("ML", 99); !errors.Is(err, paper.ErrNotFound) {
		t.Errorf("add unknown paper: err = %v, want ErrNotFound", err)
	}
	if _, err := s.AddToList("nope", 1); !errors.Is(err, paper.ErrNotFound) {
		t.Errorf("add to unknown list: err = %v, want ErrNotFound", err)
	}
}

func TestRemoveFromList(t *testing.T) {
	s := newSessionWithPapers(t, "A", "B")
	s.CreateList("ML")
	s.AddToList("ML", 1)
	s.AddToList("ML", 2)

	if err := s.RemoveFromList("ML", 1); err != nil {
		t.Fatalf("RemoveFromList: %v", err)
	}
	l, _ := s.List("ML")
	if len(l.Papers) != 1 || l.Papers[0] != 2 {
		t.Errorf("list papers = %v, want [2]", l.Papers)
	}

	if err := s.RemoveFromList("ML", 1); !errors.Is(err, paper.ErrNotFound) {
		t.Errorf("remove absent paper: err = %v, want ErrNotFound", err)
	}
}

func TestListsCreationOrder(t *testing.T) {
	s := New("test")
	for _, name := range []string{"Charlie", "Alpha", "Bravo"} {
		if err := s.CreateList(name); err != nil {
			t.Fatalf("CreateList(%q): %v", name, err)
		}
	}

	got := s.Lists()
	want := []string{"Charlie", "Alpha", "Bravo"}
	if len(got) != len(want) {
		t.Fatalf("Lists() = %d entries, want %d", len(got), len(want))
	}
	for i, l := range got {
		if l.Name != want[i] {
			t.Errorf("Lists()[%d] = %q, want %q", i, l.Name, want[i])
		}
	}

	if err := s.DeleteList("alpha"); err != nil {
		t.Fatalf("DeleteList: %v", err)
	}
	if got := s.Lists(); len(got) != 2 || got[0].Name != "Charlie" || got[1].Name != "Bravo" {
		t.Errorf("Lists() after delete = %v, want Charlie then Bravo", got)
	}
}

func TestRemovePaperCascades(t *testing.T) {
	s := newSessionWithPapers(t, "A", "B", "C")
	s.CreateList("One")
	s.CreateList("Two")
	s.AddToList("One", 2)
	s.AddToList("One", 3)
	s.AddToList("Two", 2)

	if err := s.RemovePaper(2); err != nil {
		t.Fatalf("RemovePaper: %v", err)
	}

	one, _ := s.List("One")
	two, _ := s.List("Two")
	if one.Contains(2) || two.Contains(2) {
		t.Error("removed paper still referenced by a reading list")
	}
	if !one.Contains(3) {
		t.Error("unrelated list entry lost during cascade")
	}
	if _, err := s.Registry.Get(2); !errors.Is(err, paper.ErrNotFound) {
		t.Errorf("Get(2) after removal: err = %v, want ErrNotFound", err)
	}

	if err := s.RemovePaper(2); !errors.Is(err, paper.ErrNotFound) {
		t.Errorf("second RemovePaper: err = %v, want ErrNotFound", err)
	}
}

func TestReset(t *testing.T) {
	s := newSessionWithPapers(t, "A")
	s.CreateList("ML")
	s.AddToList("ML", 1)

	s.Reset()

	if s.Registry.Len() != 0 {
		t.Errorf("registry len after reset = %d, want 0", s.Registry.Len())
	}
	if len(s.Lists()) != 0 {
		t.Errorf("lists after reset = %d, want 0", len(s.Lists()))
	}
	// Indices restart from 1 in a fresh session.
	idx, err := s.Registry.AddPaper(paper.Record{Title: "New"})
	if err != nil {
		t.Fatalf("AddPaper after reset: %v", err)
	}
	if idx != 1 {
		t.Errorf("index after reset = %d, want 1", idx)
	}
}

func TestManagerIsolatesConversations(t *testing.T) {
	m := NewManager()
	a := m.Get("alpha")
	b := m.Get("beta")

	if a == b {
		t.Fatal("distinct conversation ids share a session")
	}
	if again := m.Get("alpha"); again != a {
		t.Error("repeated Get returned a different session")
	}

	a.Registry.AddPaper(paper.Record{Title: "Only in alpha"})
	if b.Registry.Len() != 0 {
		t.Error("paper leaked across conversations")
	}

	ids := m.IDs()
	if len(ids) != 2 {
		t.Errorf("IDs() = %v, want two conversations", ids)
	}
}
