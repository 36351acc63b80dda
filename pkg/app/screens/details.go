package screens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/readshelf/readshelf/pkg/app/components"
	"github.com/readshelf/readshelf/pkg/app/styles"
	"github.com/readshelf/readshelf/pkg/backend"
	"github.com/readshelf/readshelf/pkg/data"
	"github.com/readshelf/readshelf/pkg/services"
)

// DetailsScreen fetches one book and lets the user edit or delete it.
// Saving and deleting carry independent in-flight flags so one busy
// action never blocks the other.
type DetailsScreen struct {
	session *services.Session
	store   *backend.Books
	bookID  string

	book    *data.Book
	form    *components.BookForm
	confirm components.Confirm
	spin    spinner.Model

	loading  bool
	saving   bool
	deleting bool

	toast *components.Toast
	width int
}

type bookLoadedMsg struct {
	book *data.Book
	err  error
}

type bookSavedMsg struct {
	title string
	err   error
}

type bookDeletedMsg struct {
	title string
	err   error
}

func NewDetailsScreen(session *services.Session, store *backend.Books, bookID string) *DetailsScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SubtitleStyle

	return &DetailsScreen{
		session: session,
		store:   store,
		bookID:  bookID,
		spin:    sp,
		toast:   components.NewToast(),
		width:   80,
	}
}

func (s *DetailsScreen) Resize(width, _ int) {
	if width != 0 {
		s.width = width
	}
}

func (s *DetailsScreen) Init() tea.Cmd {
	if s.session.Current() == nil || s.bookID == "" {
		return nil
	}
	s.loading = true
	return tea.Batch(s.spin.Tick, s.load)
}

func (s *DetailsScreen) load() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	book, err := s.store.Get(ctx, s.session.AccessToken(), s.bookID)
	return bookLoadedMsg{book: book, err: err}
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.Resize(msg.Width, msg.Height)
		return s, nil

	case bookLoadedMsg:
		s.loading = false
		if msg.err != nil {
			// Not-found is its own outcome, distinct from a failure;
			// both leave this screen for the list.
			notice := components.Notice{Kind: components.NoticeError, Text: "Could not load that book"}
			if errors.Is(msg.err, backend.ErrNotFound) {
				notice.Text = "That book does not exist"
			}
			return s, switchToLibrary(&notice)
		}
		s.book = msg.book
		s.form = components.NewBookForm(data.DraftOf(*msg.book), "save")
		return s, nil

	case components.SubmitMsg:
		if s.saving {
			return s, nil
		}
		s.saving = true
		return s, s.save(msg.Draft)

	case components.CancelMsg:
		return s, switchToLibrary(nil)

	case bookSavedMsg:
		s.saving = false
		if msg.err != nil {
			// Stay put so the user can retry.
			return s, s.toast.Show(components.Notice{
				Kind: components.NoticeError,
				Text: "Could not save your changes",
			})
		}
		return s, switchToLibrary(&components.Notice{
			Kind: components.NoticeSuccess,
			Text: fmt.Sprintf("Updated “%s”", msg.title),
		})

	case bookDeletedMsg:
		s.deleting = false
		if msg.err != nil {
			s.confirm.Hide()
			return s, s.toast.Show(components.Notice{
				Kind: components.NoticeError,
				Text: "Could not delete the book",
			})
		}
		return s, switchToLibrary(&components.Notice{
			Kind: components.NoticeSuccess,
			Text: fmt.Sprintf("Deleted “%s”", msg.title),
		})

	case components.ToastClearMsg:
		s.toast.Update(msg)
		return s, nil

	case spinner.TickMsg:
		if s.loading {
			var cmd tea.Cmd
			s.spin, cmd = s.spin.Update(msg)
			return s, cmd
		}
		return s, nil

	case tea.KeyMsg:
		if s.confirm.Visible {
			switch msg.String() {
			case "y", "enter":
				if s.deleting {
					return s, nil
				}
				s.deleting = true
				s.confirm.Busy = true
				return s, s.delete
			case "n", "esc":
				s.confirm.Hide()
			}
			return s, nil
		}
		if msg.String() == "ctrl+d" && s.book != nil {
			s.confirm.Show(s.book.Title)
			return s, nil
		}
	}

	if s.form != nil {
		return s, s.form.Update(msg)
	}
	return s, nil
}

func (s *DetailsScreen) save(draft data.BookDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		book, err := s.store.Update(ctx, s.session.AccessToken(), s.bookID, draft)
		if err != nil {
			return bookSavedMsg{err: err}
		}
		return bookSavedMsg{title: book.Title}
	}
}

func (s *DetailsScreen) delete() tea.Msg {
	title := ""
	if s.book != nil {
		title = s.book.Title
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := s.store.Delete(ctx, s.session.AccessToken(), s.bookID)
	return bookDeletedMsg{title: title, err: err}
}

func switchToLibrary(notice *components.Notice) tea.Cmd {
	return func() tea.Msg {
		return SwitchScreenMsg{Screen: "library", Data: notice}
	}
}

func (s *DetailsScreen) View() string {
	if s.loading {
		return fmt.Sprintf("\n %s %s\n", s.spin.View(), styles.MutedStyle.Render("Loading…"))
	}
	if s.book == nil {
		return ""
	}

	rows := []string{
		styles.TitleStyle.Render("✎ Edit book"),
		s.form.View(),
	}
	if s.saving {
		rows = append(rows, styles.MutedStyle.Render("Saving…"))
	}
	if s.confirm.Visible {
		rows = append(rows, "", s.confirm.View())
	} else {
		rows = append(rows, styles.HelpStyle.Render("ctrl+d: delete book"))
	}
	if t := s.toast.View(); t != "" {
		rows = append(rows, "", t)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
