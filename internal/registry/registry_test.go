package registry

import (
	"errors"
	"testing"
	"time"

	"scholarbot/internal/paper"
)

func mustAdd(t *testing.T, r *Registry, title string) int {
	t.Helper()
	idx, err := r.AddPaper(paper.Record{Title: title})
	if err != nil {
		t.Fatalf("AddPaper(%q): %v", title, err)
	}
	return idx
}

func TestAddPaperAssignsIncreasingIndices(t *testing.T) {
	r := New()
	if idx := mustAdd(t, r, "First"); idx != 1 {
		t.Errorf("first index = %d, want 1", idx)
	}
	if idx := mustAdd(t, r, "Second"); idx != 2 {
		t.Errorf("second index = %d, want 2", idx)
	}
}

func TestAddPaperRejectsEmptyTitle(t *testing.T) {
	r := New()
	if _, err := r.AddPaper(paper.Record{Title: "   "}); !errors.Is(err, paper.ErrInvalidArgument) {
		t.Errorf("AddPaper with blank title: err = %v, want ErrInvalidArgument", err)
	}
}

func TestRemoveNeverReusesIndex(t *testing.T) {
	r := New()
	mustAdd(t, r, "First")
	second := mustAdd(t, r, "Second")

	if err := r.Remove(second); err != nil {
		t.Fatalf("Remove(%d): %v", second, err)
	}
	if _, err := r.Get(second); !errors.Is(err, paper.ErrNotFound) {
		t.Errorf("Get(%d) after removal: err = %v, want ErrNotFound", second, err)
	}

	third := mustAdd(t, r, "Third")
	if third != 3 {
		t.Errorf("index after removal = %d, want 3 (never reuse %d)", third, second)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRestoreContinuesPastHighestIndex(t *testing.T) {
	r := New()
	r.Restore([]*paper.Paper{
		{Index: 2, Title: "Kept"},
		{Index: 5, Title: "Also kept"},
	})

	idx := mustAdd(t, r, "New arrival")
	if idx != 6 {
		t.Errorf("index after restore = %d, want 6", idx)
	}
}

func TestAddNote(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	r := New()
	idx := mustAdd(t, r, "Paper")

	n1, err := r.AddNote(idx, "  key result on page 4  ")
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if n1 != 1 {
		t.Errorf("first note index = %d, want 1", n1)
	}

	p, _ := r.Get(idx)
	if p.Notes[0].Text != "key result on page 4" {
		t.Errorf("note text = %q, want trimmed text", p.Notes[0].Text)
	}
	if !p.Notes[0].Created.Equal(fixed) {
		t.Errorf("note created = %v, want %v", p.Notes[0].Created, fixed)
	}

	if _, err := r.AddNote(idx, " "); !errors.Is(err, paper.ErrInvalidArgument) {
		t.Errorf("AddNote with blank text: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := r.AddNote(99, "text"); !errors.Is(err, paper.ErrNotFound) {
		t.Errorf("AddNote on missing paper: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteNoteRenumbers(t *testing.T) {
	r := New()
	idx := mustAdd(t, r, "Paper")
	for _, text := range []string{"alpha", "beta", "gamma"} {
		if _, err := r.AddNote(idx, text); err != nil {
			t.Fatalf("AddNote(%q): %v", text, err)
		}
	}

	if err := r.DeleteNote(idx, 2); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}

	p, _ := r.Get(idx)
	if len(p.Notes) != 2 {
		t.Fatalf("notes remaining = %d, want 2", len(p.Notes))
	}
	for i, want := range []string{"alpha", "gamma"} {
		if p.Notes[i].Index != i+1 {
			t.Errorf("note %d index = %d, want %d", i, p.Notes[i].Index, i+1)
		}
		if p.Notes[i].Text != want {
			t.Errorf("note %d text = %q, want %q", i, p.Notes[i].Text, want)
		}
	}

	if err := r.DeleteNote(idx, 5); !errors.Is(err, paper.ErrNotFound) {
		t.Errorf("DeleteNote out of range: err = %v, want ErrNotFound", err)
	}
}

func TestClearNotes(t *testing.T) {
	r := New()
	a := mustAdd(t, r, "A")
	b := mustAdd(t, r, "B")
	r.AddNote(a, "on a")
	r.AddNote(b, "on b")

	if err := r.ClearNotes(a); err != nil {
		t.Fatalf("ClearNotes(%d): %v", a, err)
	}
	pa, _ := r.Get(a)
	pb, _ := r.Get(b)
	if len(pa.Notes) != 0 {
		t.Errorf("paper A notes = %d, want 0", len(pa.Notes))
	}
	if len(pb.Notes) != 1 {
		t.Errorf("paper B notes = %d, want 1", len(pb.Notes))
	}

	if err := r.ClearNotes(0); err != nil {
		t.Fatalf("ClearNotes(0): %v", err)
	}
	if len(pb.Notes) != 0 {
		t.Errorf("paper B notes after clear-all = %d, want 0", len(pb.Notes))
	}

	if err := r.ClearNotes(42); !errors.Is(err, paper.ErrNotFound) {
		t.Errorf("ClearNotes on missing paper: err = %v, want ErrNotFound", err)
	}
}
