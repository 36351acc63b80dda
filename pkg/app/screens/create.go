package screens

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/readshelf/readshelf/pkg/app/components"
	"github.com/readshelf/readshelf/pkg/app/styles"
	"github.com/readshelf/readshelf/pkg/backend"
	"github.com/readshelf/readshelf/pkg/data"
	"github.com/readshelf/readshelf/pkg/services"
)

// CreateScreen adds a new book via the shared form. On failure the
// form keeps its values so the user can resubmit.
type CreateScreen struct {
	session *services.Session
	store   *backend.Books

	form     *components.BookForm
	creating bool
	toast    *components.Toast
	width    int
}

type bookCreatedMsg struct {
	title string
	err   error
}

func NewCreateScreen(session *services.Session, store *backend.Books) *CreateScreen {
	return &CreateScreen{
		session: session,
		store:   store,
		form:    components.NewBookForm(data.NewDraft(), "add"),
		toast:   components.NewToast(),
		width:   80,
	}
}

func (s *CreateScreen) Resize(width, _ int) {
	if width != 0 {
		s.width = width
	}
}

func (s *CreateScreen) Init() tea.Cmd {
	return nil
}

func (s *CreateScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.Resize(msg.Width, msg.Height)
		return s, nil

	case components.SubmitMsg:
		if s.creating {
			return s, nil
		}
		if s.session.Current() == nil {
			// No resolved identity, nothing to do.
			return s, nil
		}
		s.creating = true
		return s, s.create(msg.Draft)

	case components.CancelMsg:
		return s, switchToLibrary(nil)

	case bookCreatedMsg:
		s.creating = false
		if msg.err != nil {
			return s, s.toast.Show(components.Notice{
				Kind: components.NoticeError,
				Text: "Could not add the book",
			})
		}
		return s, switchToLibrary(&components.Notice{
			Kind: components.NoticeSuccess,
			Text: fmt.Sprintf("Added “%s” to your shelf", msg.title),
		})

	case components.ToastClearMsg:
		s.toast.Update(msg)
		return s, nil
	}

	return s, s.form.Update(msg)
}

func (s *CreateScreen) create(draft data.BookDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		book, err := s.store.Insert(ctx, s.session.AccessToken(), s.session.UserID(), draft)
		if err != nil {
			return bookCreatedMsg{err: err}
		}
		return bookCreatedMsg{title: book.Title}
	}
}

func (s *CreateScreen) View() string {
	rows := []string{
		styles.TitleStyle.Render("＋ Add a book"),
		s.form.View(),
	}
	if s.creating {
		rows = append(rows, styles.MutedStyle.Render("Adding…"))
	}
	if t := s.toast.View(); t != "" {
		rows = append(rows, "", t)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
