package components

import (
	"strings"
	"testing"

	"github.com/readshelf/readshelf/pkg/data"
)

func TestNewBookList(t *testing.T) {
	list := NewBookList()

	if list == nil {
		t.Fatal("Expected book list to be created")
	}

	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0, got %d", list.SelectedIndex)
	}

	if len(list.Items) != 0 {
		t.Errorf("Expected 0 items, got %d", len(list.Items))
	}
}

func TestSetItemsClampsSelection(t *testing.T) {
	list := NewBookList()

	list.SetItems([]data.Book{
		{ID: "1", Title: "Dune"},
		{ID: "2", Title: "The Hobbit"},
		{ID: "3", Title: "Emma"},
	})
	list.SelectedIndex = 2

	// Fewer items than the current selection
	list.SetItems([]data.Book{
		{ID: "1", Title: "Dune"},
	})

	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex to be clamped to 0, got %d", list.SelectedIndex)
	}

	list.SetItems(nil)
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0 for empty list, got %d", list.SelectedIndex)
	}
}

func TestNextWrapsAround(t *testing.T) {
	list := NewBookList()
	list.SetItems([]data.Book{
		{ID: "1", Title: "Dune"},
		{ID: "2", Title: "The Hobbit"},
		{ID: "3", Title: "Emma"},
	})

	list.Next()
	if list.SelectedIndex != 1 {
		t.Errorf("Expected SelectedIndex 1, got %d", list.SelectedIndex)
	}

	list.Next()
	list.Next()
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex to wrap to 0, got %d", list.SelectedIndex)
	}
}

func TestPrevWrapsAround(t *testing.T) {
	list := NewBookList()
	list.SetItems([]data.Book{
		{ID: "1", Title: "Dune"},
		{ID: "2", Title: "The Hobbit"},
	})

	list.Prev()
	if list.SelectedIndex != 1 {
		t.Errorf("Expected SelectedIndex to wrap to 1, got %d", list.SelectedIndex)
	}

	list.Prev()
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0, got %d", list.SelectedIndex)
	}
}

func TestNextPrevEmptyList(t *testing.T) {
	list := NewBookList()

	// Should not panic with an empty list
	list.Next()
	list.Prev()

	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex to remain 0, got %d", list.SelectedIndex)
	}
}

func TestSelected(t *testing.T) {
	list := NewBookList()

	if list.Selected() != nil {
		t.Error("Expected nil for empty list")
	}

	list.SetItems([]data.Book{
		{ID: "1", Title: "Dune"},
		{ID: "2", Title: "The Hobbit"},
	})

	selected := list.Selected()
	if selected == nil {
		t.Fatal("Expected selected item")
	}
	if selected.ID != "1" {
		t.Errorf("Expected selected book ID '1', got '%s'", selected.ID)
	}

	list.Next()
	if got := list.Selected().ID; got != "2" {
		t.Errorf("Expected selected book ID '2', got '%s'", got)
	}
}

func TestBookCardShowsAuthorAndFavorite(t *testing.T) {
	author := "Frank Herbert"
	card := BookCard(data.Book{
		Title:      "Dune",
		Author:     &author,
		Status:     data.StatusRead,
		IsFavorite: true,
	}, 60)

	if !strings.Contains(card, "Dune") {
		t.Error("Expected title in card")
	}
	if !strings.Contains(card, "by Frank Herbert") {
		t.Error("Expected author line in card")
	}
	if !strings.Contains(card, "♥") {
		t.Error("Expected favorite marker in card")
	}
}

func TestBookCardWithoutAuthor(t *testing.T) {
	card := BookCard(data.Book{Title: "Anonymous Tales", Status: data.StatusWantToRead}, 60)

	if strings.Contains(card, "by ") {
		t.Error("Expected no author line when author is missing")
	}
}

func TestBookCardProgressOnlyWhileReading(t *testing.T) {
	reading := BookCard(data.Book{
		Title:           "Dune",
		Status:          data.StatusReading,
		ReadingProgress: 40,
	}, 60)
	if !strings.Contains(reading, "40%") {
		t.Error("Expected progress percentage while reading")
	}

	done := BookCard(data.Book{
		Title:           "Dune",
		Status:          data.StatusRead,
		ReadingProgress: 100,
	}, 60)
	if strings.Contains(done, "100%") {
		t.Error("Expected no progress bar once read")
	}
}

func TestSkeletonCardsCount(t *testing.T) {
	out := SkeletonCards(4, 60)

	cards := strings.Count(out, "░")
	if cards == 0 {
		t.Fatal("Expected skeleton content")
	}
}
