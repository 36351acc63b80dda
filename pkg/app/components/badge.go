package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/readshelf/readshelf/pkg/app/styles"
	"github.com/readshelf/readshelf/pkg/data"
)

// StatusBadge renders the colored reading-state label for a book.
func StatusBadge(s data.Status) string {
	return badgeStyle(s).Render(s.Label())
}

func badgeStyle(s data.Status) lipgloss.Style {
	switch s {
	case data.StatusReading:
		return styles.BadgeReading
	case data.StatusRead:
		return styles.BadgeRead
	case data.StatusWantToRead:
		return styles.BadgeWantToRead
	}
	return styles.MutedStyle
}

// StarRating renders a 1-5 rating as stars, or a muted placeholder
// when unrated.
func StarRating(rating *int) string {
	if rating == nil || *rating < 1 {
		return styles.MutedStyle.Render("not rated")
	}
	n := *rating
	if n > 5 {
		n = 5
	}
	return styles.StarStyle.Render(strings.Repeat("★", n) + strings.Repeat("☆", 5-n))
}

// ProgressBar renders reading progress as a filled bar.
func ProgressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return styles.ProgressBarStyle.Render(bar)
}
