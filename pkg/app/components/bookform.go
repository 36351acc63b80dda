package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/readshelf/readshelf/pkg/app/styles"
	"github.com/readshelf/readshelf/pkg/data"
)

// SubmitMsg carries the normalized draft once local validation passed.
// Whether the submission succeeds, and telling the user when it does
// not, is the caller's business.
type SubmitMsg struct {
	Draft data.BookDraft
}

// CancelMsg discards the draft; the caller navigates away.
type CancelMsg struct{}

type formField int

const (
	fieldTitle formField = iota
	fieldAuthor
	fieldStatus
	fieldRating
	fieldProgress
	fieldReview
	fieldFavorite
)

// BookForm owns the draft of all editable book fields. It is shared by
// the create and edit screens; the progress slider only appears while
// the status is "reading".
type BookForm struct {
	Width int

	title  textinput.Model
	author textinput.Model
	review textinput.Model

	status   data.Status
	rating   int // 0 means unrated
	progress int
	favorite bool

	focus   int
	errText string
	label   string
}

func NewBookForm(d data.BookDraft, submitLabel string) *BookForm {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	title.Width = 40
	title.SetValue(d.Title)
	title.Focus()

	author := textinput.New()
	author.Placeholder = "Author (optional)"
	author.CharLimit = 200
	author.Width = 40
	author.SetValue(d.Author)

	review := textinput.New()
	review.Placeholder = "A few words about it (optional)"
	review.CharLimit = 1000
	review.Width = 40
	review.SetValue(d.Review)

	rating := 0
	if d.Rating != nil {
		rating = *d.Rating
	}
	status := d.Status
	if !status.Valid() {
		status = data.StatusWantToRead
	}

	return &BookForm{
		Width:    80,
		title:    title,
		author:   author,
		review:   review,
		status:   status,
		rating:   rating,
		progress: d.ReadingProgress,
		favorite: d.IsFavorite,
		label:    submitLabel,
	}
}

// Draft snapshots the current field values.
func (f *BookForm) Draft() data.BookDraft {
	var rating *int
	if f.rating > 0 {
		r := f.rating
		rating = &r
	}
	return data.BookDraft{
		Title:           f.title.Value(),
		Author:          f.author.Value(),
		Status:          f.status,
		Rating:          rating,
		Review:          f.review.Value(),
		IsFavorite:      f.favorite,
		ReadingProgress: f.progress,
	}
}

// Error returns the pending local validation message, if any.
func (f *BookForm) Error() string { return f.errText }

// fields is the focus order; the progress slider is present only while
// reading.
func (f *BookForm) fields() []formField {
	fs := []formField{fieldTitle, fieldAuthor, fieldStatus, fieldRating}
	if f.status == data.StatusReading {
		fs = append(fs, fieldProgress)
	}
	return append(fs, fieldReview, fieldFavorite)
}

func (f *BookForm) current() formField {
	fs := f.fields()
	if f.focus >= len(fs) {
		f.focus = len(fs) - 1
	}
	return fs[f.focus]
}

func (f *BookForm) textInput(field formField) *textinput.Model {
	switch field {
	case fieldTitle:
		return &f.title
	case fieldAuthor:
		return &f.author
	case fieldReview:
		return &f.review
	}
	return nil
}

func (f *BookForm) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.forward(msg)
	}

	switch key.String() {
	case "esc":
		return func() tea.Msg { return CancelMsg{} }
	case "ctrl+s":
		return f.submit()
	case "tab", "down":
		return f.move(1)
	case "shift+tab", "up":
		return f.move(-1)
	case "enter":
		if f.current() == fieldFavorite {
			f.favorite = !f.favorite
			return nil
		}
		return f.move(1)
	}

	cur := f.current()
	if in := f.textInput(cur); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return cmd
	}

	switch key.String() {
	case "left", "h":
		f.adjust(cur, -1)
	case "right", "l":
		f.adjust(cur, 1)
	case " ":
		if cur == fieldFavorite {
			f.favorite = !f.favorite
		}
	}
	return nil
}

// forward delivers non-key messages (cursor blinks) to the inputs.
func (f *BookForm) forward(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, field := range []formField{fieldTitle, fieldAuthor, fieldReview} {
		in := f.textInput(field)
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (f *BookForm) move(delta int) tea.Cmd {
	fs := f.fields()
	f.focus += delta
	if f.focus < 0 {
		f.focus = len(fs) - 1
	}
	if f.focus >= len(fs) {
		f.focus = 0
	}

	for _, field := range []formField{fieldTitle, fieldAuthor, fieldReview} {
		f.textInput(field).Blur()
	}
	if in := f.textInput(f.current()); in != nil {
		in.Focus()
		return textinput.Blink
	}
	return nil
}

func (f *BookForm) adjust(field formField, delta int) {
	switch field {
	case fieldStatus:
		idx := 0
		for i, s := range data.Statuses {
			if s == f.status {
				idx = i
			}
		}
		idx = (idx + delta + len(data.Statuses)) % len(data.Statuses)
		f.status = data.Statuses[idx]
		if f.status != data.StatusReading {
			// Progress row disappears; keep focus in range.
			f.current()
		}
	case fieldRating:
		f.rating += delta
		if f.rating < 0 {
			f.rating = 0
		}
		if f.rating > 5 {
			f.rating = 5
		}
	case fieldProgress:
		f.progress += delta * 5
		if f.progress < 0 {
			f.progress = 0
		}
		if f.progress > 100 {
			f.progress = 100
		}
	}
}

// submit validates locally and hands the normalized draft to the
// caller. A blank title blocks submission.
func (f *BookForm) submit() tea.Cmd {
	draft := f.Draft().Normalized()
	if draft.Title == "" {
		f.errText = "Title is required"
		return nil
	}
	if errs := draft.Validate(); len(errs) > 0 {
		f.errText = errs[0].Error()
		return nil
	}
	f.errText = ""
	return func() tea.Msg { return SubmitMsg{Draft: draft} }
}

func (f *BookForm) View() string {
	cur := f.current()

	rows := []string{
		f.inputRow("Title", fieldTitle, cur),
		f.inputRow("Author", fieldAuthor, cur),
		f.selectorRow("Status", fieldStatus, cur, f.status.Label()),
		f.selectorRow("Rating", fieldRating, cur, ratingText(f.rating)),
	}
	if f.status == data.StatusReading {
		bar := fmt.Sprintf("%s %3d%%", ProgressBar(f.progress, 20), f.progress)
		rows = append(rows, f.selectorRow("Progress", fieldProgress, cur, bar))
	}
	rows = append(rows,
		f.inputRow("Review", fieldReview, cur),
		f.selectorRow("Favorite", fieldFavorite, cur, checkbox(f.favorite)),
	)

	if f.errText != "" {
		rows = append(rows, "", styles.ErrorStyle.Render(f.errText))
	}
	rows = append(rows, "", styles.HelpStyle.Render(
		fmt.Sprintf("ctrl+s: %s • esc: cancel • tab/↑↓: fields • ←/→: change value", f.label),
	))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (f *BookForm) inputRow(label string, field, cur formField) string {
	in := f.textInput(field)
	inputStyle := styles.InputStyle
	labelStyle := styles.LabelStyle
	if field == cur {
		inputStyle = styles.FocusedInputStyle
		labelStyle = styles.FocusedLabelStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(label),
		inputStyle.Render(in.View()),
	)
}

func (f *BookForm) selectorRow(label string, field, cur formField, value string) string {
	labelStyle := styles.LabelStyle
	text := fmt.Sprintf("  %s", value)
	if field == cur {
		labelStyle = styles.FocusedLabelStyle
		text = fmt.Sprintf("◀ %s ▶", value)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(label),
		styles.TextStyle.Render(text),
	)
}

func ratingText(rating int) string {
	if rating == 0 {
		return "not rated"
	}
	var r = rating
	return StarRating(&r)
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
