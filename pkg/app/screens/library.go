package screens

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/readshelf/readshelf/pkg/app/components"
	"github.com/readshelf/readshelf/pkg/app/styles"
	"github.com/readshelf/readshelf/pkg/backend"
	"github.com/readshelf/readshelf/pkg/data"
	"github.com/readshelf/readshelf/pkg/services"
)

const skeletonCount = 4

// LibraryScreen lists the user's books newest first with a free-text
// query and a status filter, both applied client-side.
type LibraryScreen struct {
	session *services.Session
	store   *backend.Books

	query  textinput.Model
	status data.Status
	list   *components.BookList
	books  []data.Book

	loading bool
	toast   *components.Toast

	width  int
	height int
}

type booksLoadedMsg struct {
	books []data.Book
	err   error
}

func NewLibraryScreen(session *services.Session, store *backend.Books) *LibraryScreen {
	query := textinput.New()
	query.Placeholder = "Search by title or author…"
	query.CharLimit = 100
	query.Width = 40

	return &LibraryScreen{
		session: session,
		store:   store,
		query:   query,
		status:  data.StatusAll,
		list:    components.NewBookList(),
		toast:   components.NewToast(),
		width:   80,
		height:  24,
	}
}

func (s *LibraryScreen) Resize(width, height int) {
	if width == 0 {
		return
	}
	s.width = width
	s.height = height
	s.list.Width = width - 4
	s.list.Height = height - 10
}

// ShowNotice surfaces a notice carried over from another screen.
func (s *LibraryScreen) ShowNotice(n components.Notice) tea.Cmd {
	return s.toast.Show(n)
}

func (s *LibraryScreen) Init() tea.Cmd {
	if s.session.Current() == nil {
		return nil
	}
	s.loading = true
	return s.load
}

func (s *LibraryScreen) load() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	books, err := s.store.List(ctx, s.session.AccessToken())
	return booksLoadedMsg{books: books, err: err}
}

func (s *LibraryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.Resize(msg.Width, msg.Height)

	case booksLoadedMsg:
		s.loading = false
		if msg.err != nil {
			// Non-blocking: the list stays empty, no redirect.
			s.books = nil
			s.refresh()
			return s, s.toast.Show(components.Notice{
				Kind: components.NoticeError,
				Text: "Could not load your books",
			})
		}
		s.books = msg.books
		s.refresh()

	case components.ToastClearMsg:
		s.toast.Update(msg)

	case tea.KeyMsg:
		if s.query.Focused() {
			switch msg.String() {
			case "esc", "enter":
				s.query.Blur()
			default:
				var cmd tea.Cmd
				s.query, cmd = s.query.Update(msg)
				s.refresh()
				return s, cmd
			}
			return s, nil
		}

		switch msg.String() {
		case "q":
			return s, tea.Quit
		case "/":
			s.query.Focus()
			return s, textinput.Blink
		case "s":
			s.cycleStatus()
			s.refresh()
		case "up", "k":
			s.list.Prev()
		case "down", "j":
			s.list.Next()
		case "r":
			return s, s.Init()
		case "n":
			return s, func() tea.Msg { return SwitchScreenMsg{Screen: "create"} }
		case "enter":
			if selected := s.list.Selected(); selected != nil {
				id := selected.ID
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: id}
				}
			}
		case "ctrl+o":
			return s, s.signOut
		}
	}

	return s, nil
}

func (s *LibraryScreen) signOut() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.session.SignOut(ctx)
	// The root screen navigates on the signed-out event.
	return nil
}

func (s *LibraryScreen) cycleStatus() {
	switch s.status {
	case data.StatusAll:
		s.status = data.StatusWantToRead
	case data.StatusWantToRead:
		s.status = data.StatusReading
	case data.StatusReading:
		s.status = data.StatusRead
	default:
		s.status = data.StatusAll
	}
}

func (s *LibraryScreen) refresh() {
	s.list.SetItems(data.Filter(s.books, s.query.Value(), s.status))
}

func (s *LibraryScreen) filtersActive() bool {
	return s.query.Value() != "" || s.status != data.StatusAll
}

func (s *LibraryScreen) View() string {
	header := styles.TitleStyle.Render("📚 My Books")

	queryStyle := styles.InputStyle
	if s.query.Focused() {
		queryStyle = styles.FocusedInputStyle
	}
	filterLabel := "all"
	if s.status != data.StatusAll {
		filterLabel = s.status.Label()
	}
	filterRow := lipgloss.JoinHorizontal(
		lipgloss.Center,
		queryStyle.Render(s.query.View()),
		"  ",
		styles.SubtitleStyle.Render("status: "+filterLabel),
	)

	var body string
	switch {
	case s.loading:
		body = components.SkeletonCards(skeletonCount, s.width-4)
	case len(s.list.Items) > 0:
		body = s.list.View()
	default:
		body = s.emptyState()
	}

	var toast string
	if t := s.toast.View(); t != "" {
		toast = t + "\n"
	}

	help := styles.HelpStyle.Render(
		"↑/↓: select • enter: open • n: new • /: search • s: status filter • r: refresh • ctrl+o: sign out • q: quit",
	)

	return fmt.Sprintf("%s\n%s\n\n%s\n%s%s", header, filterRow, body, toast, help)
}

func (s *LibraryScreen) emptyState() string {
	if s.filtersActive() {
		return styles.CardStyle.Width(s.width - 4).Render(lipgloss.JoinVertical(
			lipgloss.Left,
			styles.TextStyle.Render("No books match your filters."),
			styles.MutedStyle.Render("Clear the search or change the status filter."),
		))
	}
	return styles.CardStyle.Width(s.width - 4).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		styles.TextStyle.Render("Your shelf is empty."),
		styles.SubtitleStyle.Render("Press n to add your first book."),
	))
}
