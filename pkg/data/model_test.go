package data

import "testing"

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Errorf("Expected %q to be valid", s)
		}
	}
	if Status("finished").Valid() {
		t.Error("Expected unknown status to be invalid")
	}
	if StatusAll.Valid() {
		t.Error("Expected the empty status to be invalid")
	}
}

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft()

	if d.Status != StatusWantToRead {
		t.Errorf("Expected default status want_to_read, got %q", d.Status)
	}
	if d.Title != "" || d.Author != "" || d.Review != "" {
		t.Error("Expected empty text fields")
	}
	if d.Rating != nil {
		t.Error("Expected no rating by default")
	}
	if d.IsFavorite {
		t.Error("Expected favorite to default to false")
	}
	if d.ReadingProgress != 0 {
		t.Errorf("Expected progress 0, got %d", d.ReadingProgress)
	}
}

func TestNormalizedTrimsAndCollapses(t *testing.T) {
	d := BookDraft{
		Title:  " Dune ",
		Author: "   ",
		Status: StatusWantToRead,
		Review: " \t ",
	}

	n := d.Normalized()
	if n.Title != "Dune" {
		t.Errorf("Expected trimmed title 'Dune', got %q", n.Title)
	}
	if n.OptAuthor() != nil {
		t.Error("Expected whitespace-only author to be absent")
	}
	if n.OptReview() != nil {
		t.Error("Expected whitespace-only review to be absent")
	}
}

func TestOptFieldsKeepContent(t *testing.T) {
	d := BookDraft{Title: "Dune", Author: " Herbert ", Status: StatusRead, Review: "great"}

	if got := d.OptAuthor(); got == nil || *got != "Herbert" {
		t.Errorf("Expected author 'Herbert', got %v", got)
	}
	if got := d.OptReview(); got == nil || *got != "great" {
		t.Errorf("Expected review 'great', got %v", got)
	}
}

func TestValidateOK(t *testing.T) {
	rating := 4
	d := BookDraft{
		Title:           "Dune",
		Status:          StatusReading,
		Rating:          &rating,
		ReadingProgress: 55,
	}
	if errs := d.Validate(); len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}
}

func TestValidateBlankTitle(t *testing.T) {
	d := BookDraft{Title: "   ", Status: StatusWantToRead}

	errs := d.Validate()
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != "title" {
		t.Errorf("Expected error on title, got %q", errs[0].Field)
	}
}

func TestValidateRanges(t *testing.T) {
	six := 6
	cases := []struct {
		name  string
		draft BookDraft
		field string
	}{
		{"rating too high", BookDraft{Title: "x", Status: StatusRead, Rating: &six}, "rating"},
		{"progress too high", BookDraft{Title: "x", Status: StatusReading, ReadingProgress: 101}, "reading_progress"},
		{"progress negative", BookDraft{Title: "x", Status: StatusReading, ReadingProgress: -5}, "reading_progress"},
		{"bad status", BookDraft{Title: "x", Status: Status("finished")}, "status"},
	}

	for _, tc := range cases {
		errs := tc.draft.Validate()
		if len(errs) == 0 {
			t.Errorf("%s: expected an error", tc.name)
			continue
		}
		if errs[0].Field != tc.field {
			t.Errorf("%s: expected error on %q, got %q", tc.name, tc.field, errs[0].Field)
		}
	}
}

func TestDraftOfRoundTrip(t *testing.T) {
	author := "Frank Herbert"
	rating := 5
	review := "a classic"
	b := Book{
		ID:              "b-1",
		Title:           "Dune",
		Author:          &author,
		Status:          StatusRead,
		Rating:          &rating,
		Review:          &review,
		IsFavorite:      true,
		ReadingProgress: 100,
	}

	d := DraftOf(b)
	if d.Title != "Dune" || d.Author != "Frank Herbert" || d.Review != "a classic" {
		t.Errorf("Unexpected draft %+v", d)
	}
	if d.Rating == nil || *d.Rating != 5 {
		t.Error("Expected rating 5")
	}
	if !d.IsFavorite || d.ReadingProgress != 100 || d.Status != StatusRead {
		t.Errorf("Unexpected draft %+v", d)
	}
}
