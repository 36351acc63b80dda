package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/readshelf/readshelf/pkg/data"
)

func keyPress(f *BookForm, key string) tea.Msg {
	var msg tea.KeyMsg
	switch key {
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	cmd := f.Update(msg)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestNewBookFormDefaults(t *testing.T) {
	f := NewBookForm(data.NewDraft(), "add")

	draft := f.Draft()
	if draft.Status != data.StatusWantToRead {
		t.Errorf("Expected default status want_to_read, got %q", draft.Status)
	}
	if draft.Rating != nil {
		t.Error("Expected no rating by default")
	}
	if draft.IsFavorite {
		t.Error("Expected favorite off by default")
	}
}

func TestSubmitBlankTitleBlocks(t *testing.T) {
	f := NewBookForm(data.NewDraft(), "add")

	msg := keyPress(f, "ctrl+s")
	if msg != nil {
		t.Fatalf("Expected no message for blank title, got %T", msg)
	}
	if f.Error() != "Title is required" {
		t.Errorf("Expected title error, got %q", f.Error())
	}
}

func TestSubmitEmitsNormalizedDraft(t *testing.T) {
	f := NewBookForm(data.BookDraft{
		Title:  "  Dune  ",
		Author: "   ",
		Status: data.StatusWantToRead,
	}, "add")

	msg := keyPress(f, "ctrl+s")
	submit, ok := msg.(SubmitMsg)
	if !ok {
		t.Fatalf("Expected SubmitMsg, got %T", msg)
	}
	if submit.Draft.Title != "Dune" {
		t.Errorf("Expected trimmed title, got %q", submit.Draft.Title)
	}
	if submit.Draft.Author != "" {
		t.Errorf("Expected blank author to be dropped, got %q", submit.Draft.Author)
	}
	if f.Error() != "" {
		t.Errorf("Expected no error after valid submit, got %q", f.Error())
	}
}

func TestEscCancels(t *testing.T) {
	f := NewBookForm(data.NewDraft(), "add")

	msg := keyPress(f, "esc")
	if _, ok := msg.(CancelMsg); !ok {
		t.Fatalf("Expected CancelMsg, got %T", msg)
	}
}

func TestProgressFieldOnlyWhileReading(t *testing.T) {
	f := NewBookForm(data.NewDraft(), "add")

	for _, field := range f.fields() {
		if field == fieldProgress {
			t.Fatal("Expected no progress field while not reading")
		}
	}

	f.status = data.StatusReading
	found := false
	for _, field := range f.fields() {
		if field == fieldProgress {
			found = true
		}
	}
	if !found {
		t.Fatal("Expected progress field while reading")
	}
	if !strings.Contains(f.View(), "Progress") {
		t.Error("Expected progress row in view while reading")
	}
}

func TestStatusSelectorCycles(t *testing.T) {
	f := NewBookForm(data.NewDraft(), "add")
	// Move focus to the status selector.
	keyPress(f, "tab")
	keyPress(f, "tab")

	keyPress(f, "right")
	if f.status != data.StatusReading {
		t.Errorf("Expected reading after one step, got %q", f.status)
	}

	keyPress(f, "right")
	keyPress(f, "right")
	if f.status != data.StatusWantToRead {
		t.Errorf("Expected status to wrap to want_to_read, got %q", f.status)
	}

	keyPress(f, "left")
	if f.status != data.StatusRead {
		t.Errorf("Expected read after stepping back, got %q", f.status)
	}
}

func TestRatingClampsToRange(t *testing.T) {
	f := NewBookForm(data.NewDraft(), "add")
	// Title, author, status, then rating.
	keyPress(f, "tab")
	keyPress(f, "tab")
	keyPress(f, "tab")

	keyPress(f, "left")
	if f.rating != 0 {
		t.Errorf("Expected rating to stay at 0, got %d", f.rating)
	}

	for i := 0; i < 8; i++ {
		keyPress(f, "right")
	}
	if f.rating != 5 {
		t.Errorf("Expected rating capped at 5, got %d", f.rating)
	}

	draft := f.Draft()
	if draft.Rating == nil || *draft.Rating != 5 {
		t.Error("Expected draft rating 5")
	}
}

func TestDraftRatingNilWhenUnrated(t *testing.T) {
	f := NewBookForm(data.NewDraft(), "add")
	f.rating = 0

	if f.Draft().Rating != nil {
		t.Error("Expected nil rating for 0")
	}
}

func TestFavoriteToggle(t *testing.T) {
	f := NewBookForm(data.NewDraft(), "add")
	// Last field in the focus order.
	for range f.fields()[:len(f.fields())-1] {
		keyPress(f, "tab")
	}
	if f.current() != fieldFavorite {
		t.Fatalf("Expected focus on favorite, got %d", f.current())
	}

	keyPress(f, " ")
	if !f.favorite {
		t.Error("Expected favorite on after toggle")
	}

	keyPress(f, " ")
	if f.favorite {
		t.Error("Expected favorite off after second toggle")
	}
}

func TestEditFormKeepsExistingValues(t *testing.T) {
	rating := 4
	f := NewBookForm(data.BookDraft{
		Title:           "Dune",
		Author:          "Frank Herbert",
		Status:          data.StatusReading,
		Rating:          &rating,
		Review:          "Sandy.",
		IsFavorite:      true,
		ReadingProgress: 60,
	}, "save")

	draft := f.Draft()
	if draft.Title != "Dune" || draft.Author != "Frank Herbert" {
		t.Error("Expected title and author preserved")
	}
	if draft.Rating == nil || *draft.Rating != 4 {
		t.Error("Expected rating preserved")
	}
	if draft.ReadingProgress != 60 {
		t.Errorf("Expected progress 60, got %d", draft.ReadingProgress)
	}
	if !draft.IsFavorite {
		t.Error("Expected favorite preserved")
	}
}
