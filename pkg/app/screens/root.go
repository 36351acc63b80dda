package screens

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/readshelf/readshelf/pkg/app/components"
	"github.com/readshelf/readshelf/pkg/app/styles"
	"github.com/readshelf/readshelf/pkg/backend"
	"github.com/readshelf/readshelf/pkg/services"
)

type screenType int

const (
	resolvingView screenType = iota
	signinView
	libraryView
	createView
	detailsView
)

// SwitchScreenMsg requests a screen change. Data carries the book ID
// for "details" and an optional *components.Notice for "library".
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

type authEventMsg struct {
	event services.AuthEvent
}

// RootScreen gates everything behind the session: while the session
// resolves it shows a neutral loading indicator, then swaps to either
// the sign-in screen or the library. Navigation replaces the active
// screen; there is no history to go back to.
type RootScreen struct {
	session        *services.Session
	store          *backend.Books
	signupRedirect string

	events      chan services.AuthEvent
	unsubscribe func()
	spin        spinner.Model

	currentView screenType
	signin      *SignInScreen
	library     *LibraryScreen
	create      *CreateScreen
	details     *DetailsScreen

	width  int
	height int
}

func NewRootScreen(session *services.Session, store *backend.Books, signupRedirect string) *RootScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SubtitleStyle

	return &RootScreen{
		session:        session,
		store:          store,
		signupRedirect: signupRedirect,
		events:         make(chan services.AuthEvent, 16),
		spin:           sp,
		currentView:    resolvingView,
	}
}

func (r *RootScreen) Init() tea.Cmd {
	// Subscribe before kicking off the session resolution so a change
	// firing in between cannot be missed.
	r.unsubscribe = r.session.Subscribe(func(ev services.AuthEvent, _ *backend.Session) {
		select {
		case r.events <- ev:
		default:
		}
	})
	return tea.Batch(r.spin.Tick, r.listenAuth, r.resolveSession)
}

// Teardown releases the auth-state subscription.
func (r *RootScreen) Teardown() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

func (r *RootScreen) resolveSession() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	r.session.Resolve(ctx)
	// The subscription pump delivers the outcome.
	return nil
}

func (r *RootScreen) listenAuth() tea.Msg {
	return authEventMsg{event: <-r.events}
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			r.Teardown()
			return r, tea.Quit
		}

	case authEventMsg:
		cmd := r.onAuthEvent(msg.event)
		return r, tea.Batch(r.listenAuth, cmd)

	case SwitchScreenMsg:
		return r, r.switchTo(msg)

	case spinner.TickMsg:
		if r.currentView == resolvingView {
			var cmd tea.Cmd
			r.spin, cmd = r.spin.Update(msg)
			return r, cmd
		}
	}

	return r.forward(msg)
}

// onAuthEvent is the guard's state machine: resolving → authenticated
// or unauthenticated, and any later sign-out replaces the view tree
// with the sign-in screen.
func (r *RootScreen) onAuthEvent(ev services.AuthEvent) tea.Cmd {
	switch ev {
	case services.EventSignedIn:
		if r.currentView == resolvingView || r.currentView == signinView {
			return r.switchTo(SwitchScreenMsg{Screen: "library"})
		}
	case services.EventSignedOut:
		if r.currentView != signinView {
			return r.switchTo(SwitchScreenMsg{Screen: "signin"})
		}
	case services.EventTokenRefreshed:
		// Session stays live; nothing moves.
	}
	return nil
}

func (r *RootScreen) switchTo(msg SwitchScreenMsg) tea.Cmd {
	switch msg.Screen {
	case "signin":
		r.signin = NewSignInScreen(r.session, r.signupRedirect)
		r.library, r.create, r.details = nil, nil, nil
		r.currentView = signinView
		return r.signin.Init()

	case "library":
		if r.library == nil {
			r.library = NewLibraryScreen(r.session, r.store)
		}
		r.library.Resize(r.width, r.height)
		r.create, r.details = nil, nil
		r.currentView = libraryView
		cmd := r.library.Init()
		if notice, ok := msg.Data.(*components.Notice); ok && notice != nil {
			return tea.Batch(cmd, r.library.ShowNotice(*notice))
		}
		return cmd

	case "create":
		r.create = NewCreateScreen(r.session, r.store)
		r.create.Resize(r.width, r.height)
		r.currentView = createView
		return r.create.Init()

	case "details":
		id, ok := msg.Data.(string)
		if !ok || id == "" {
			return nil
		}
		r.details = NewDetailsScreen(r.session, r.store, id)
		r.details.Resize(r.width, r.height)
		r.currentView = detailsView
		return r.details.Init()
	}
	return nil
}

// forward hands the message to the active screen only; results for a
// screen that was navigated away from are dropped here.
func (r *RootScreen) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch r.currentView {
	case signinView:
		if r.signin != nil {
			model, cmd := r.signin.Update(msg)
			r.signin = model.(*SignInScreen)
			return r, cmd
		}
	case libraryView:
		if r.library != nil {
			model, cmd := r.library.Update(msg)
			r.library = model.(*LibraryScreen)
			return r, cmd
		}
	case createView:
		if r.create != nil {
			model, cmd := r.create.Update(msg)
			r.create = model.(*CreateScreen)
			return r, cmd
		}
	case detailsView:
		if r.details != nil {
			model, cmd := r.details.Update(msg)
			r.details = model.(*DetailsScreen)
			return r, cmd
		}
	}
	return r, nil
}

func (r *RootScreen) View() string {
	switch r.currentView {
	case resolvingView:
		return fmt.Sprintf("\n %s %s\n", r.spin.View(), styles.MutedStyle.Render("Checking session…"))
	case signinView:
		if r.signin != nil {
			return r.signin.View()
		}
	case libraryView:
		if r.library != nil {
			return r.library.View()
		}
	case createView:
		if r.create != nil {
			return r.create.View()
		}
	case detailsView:
		if r.details != nil {
			return r.details.View()
		}
	}
	return ""
}
