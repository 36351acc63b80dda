package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/readshelf/readshelf/pkg/app/styles"
	"github.com/readshelf/readshelf/pkg/data"
)

// BookList renders books as a vertical stack of cards with one
// selected entry.
type BookList struct {
	Items         []data.Book
	SelectedIndex int
	Width         int
	Height        int
}

func NewBookList() *BookList {
	return &BookList{
		Items:         []data.Book{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
	}
}

func (l *BookList) SetItems(items []data.Book) {
	l.Items = items
	if l.SelectedIndex >= len(items) && len(items) > 0 {
		l.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		l.SelectedIndex = 0
	}
}

func (l *BookList) Next() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex++
	if l.SelectedIndex >= len(l.Items) {
		l.SelectedIndex = 0
	}
}

func (l *BookList) Prev() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex--
	if l.SelectedIndex < 0 {
		l.SelectedIndex = len(l.Items) - 1
	}
}

func (l *BookList) Selected() *data.Book {
	if len(l.Items) == 0 || l.SelectedIndex >= len(l.Items) {
		return nil
	}
	return &l.Items[l.SelectedIndex]
}

func (l *BookList) View() string {
	var b strings.Builder
	for i, book := range l.Items {
		cardStyle := styles.CardStyle
		if i == l.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}
		b.WriteString(cardStyle.Width(l.Width - 4).Render(BookCard(book, l.Width-8)))
		b.WriteString("\n")
	}
	return b.String()
}

// BookCard renders the card body for one book. Review text is not part
// of card display.
func BookCard(b data.Book, width int) string {
	title := b.Title
	if b.IsFavorite {
		title += " " + styles.FavoriteStyle.Render("♥")
	}

	lines := []string{styles.TitleStyle.Render(title)}
	if author := b.AuthorName(); author != "" {
		lines = append(lines, styles.MutedStyle.Render("by "+author))
	}
	lines = append(lines, fmt.Sprintf("%s  %s", StatusBadge(b.Status), StarRating(b.Rating)))

	if b.Status == data.StatusReading {
		barWidth := width - 7
		if barWidth > 40 {
			barWidth = 40
		}
		if barWidth > 0 {
			lines = append(lines, fmt.Sprintf("%s %3d%%", ProgressBar(b.ReadingProgress, barWidth), b.ReadingProgress))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// SkeletonCards renders the fixed-count placeholders shown while the
// list loads.
func SkeletonCards(count, width int) string {
	line := strings.Repeat("░", max(10, width/2))
	short := strings.Repeat("░", max(6, width/4))
	var b strings.Builder
	for i := 0; i < count; i++ {
		card := lipgloss.JoinVertical(lipgloss.Left, line, short)
		b.WriteString(styles.SkeletonStyle.Width(width - 4).Render(card))
		b.WriteString("\n")
	}
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
