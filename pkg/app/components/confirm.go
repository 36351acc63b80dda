package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/readshelf/readshelf/pkg/app/styles"
)

// Confirm is the modal asking the user to confirm a delete. The book
// title is interpolated into the prompt.
type Confirm struct {
	Visible bool
	Title   string
	Busy    bool
}

func (c *Confirm) Show(title string) {
	c.Visible = true
	c.Title = title
	c.Busy = false
}

func (c *Confirm) Hide() {
	c.Visible = false
	c.Busy = false
}

func (c *Confirm) View() string {
	if !c.Visible {
		return ""
	}
	prompt := fmt.Sprintf("Delete “%s”?", c.Title)
	body := styles.TextStyle.Render("This cannot be undone.")
	action := styles.HelpStyle.Render("y: delete • n/esc: cancel")
	if c.Busy {
		action = styles.MutedStyle.Render("Deleting…")
	}
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ErrorStyle.Render(prompt),
		body,
		"",
		action,
	)
	return styles.ModalStyle.Render(content)
}
