package screens

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/readshelf/readshelf/pkg/app/styles"
	"github.com/readshelf/readshelf/pkg/services"
)

type authMode int

const (
	modeSignIn authMode = iota
	modeSignUp
)

// SignInScreen handles both sign-in and sign-up; ctrl+t flips between
// them. Success is not handled here: the session emits a signed-in
// event and the root screen navigates.
type SignInScreen struct {
	session        *services.Session
	signupRedirect string

	mode       authMode
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	errText    string
	infoText   string
	width      int
}

type authResultMsg struct {
	err       error
	signup    bool
	confirmed bool
}

func NewSignInScreen(session *services.Session, signupRedirect string) *SignInScreen {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 200
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 200
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &SignInScreen{
		session:        session,
		signupRedirect: signupRedirect,
		email:          email,
		password:       password,
	}
}

func (s *SignInScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *SignInScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down", "shift+tab", "up":
			s.focus = 1 - s.focus
			if s.focus == 0 {
				s.email.Focus()
				s.password.Blur()
			} else {
				s.password.Focus()
				s.email.Blur()
			}
			return s, textinput.Blink

		case "ctrl+t":
			if s.mode == modeSignIn {
				s.mode = modeSignUp
			} else {
				s.mode = modeSignIn
			}
			s.errText = ""
			s.infoText = ""
			return s, nil

		case "enter":
			if s.submitting {
				return s, nil
			}
			email := strings.TrimSpace(s.email.Value())
			password := s.password.Value()
			if email == "" || password == "" {
				s.errText = "Email and password are required"
				return s, nil
			}
			s.submitting = true
			s.errText = ""
			s.infoText = ""
			return s, s.submit(email, password)
		}

		var cmd tea.Cmd
		if s.focus == 0 {
			s.email, cmd = s.email.Update(msg)
		} else {
			s.password, cmd = s.password.Update(msg)
		}
		return s, cmd

	case authResultMsg:
		s.submitting = false
		if msg.err != nil {
			s.errText = services.FriendlyError(msg.err)
			return s, nil
		}
		if msg.signup && !msg.confirmed {
			s.mode = modeSignIn
			s.infoText = "Check your email to confirm the account, then sign in."
			s.password.SetValue("")
		}
		return s, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	s.email, cmd = s.email.Update(msg)
	cmds = append(cmds, cmd)
	s.password, cmd = s.password.Update(msg)
	cmds = append(cmds, cmd)
	return s, tea.Batch(cmds...)
}

func (s *SignInScreen) submit(email, password string) tea.Cmd {
	signup := s.mode == modeSignUp
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if signup {
			confirmed, err := s.session.SignUp(ctx, email, password, s.signupRedirect)
			return authResultMsg{err: err, signup: true, confirmed: confirmed}
		}
		return authResultMsg{err: s.session.SignIn(ctx, email, password)}
	}
}

func (s *SignInScreen) View() string {
	title := "Sign in"
	action := "sign in"
	alt := "create an account"
	if s.mode == modeSignUp {
		title = "Create account"
		action = "sign up"
		alt = "sign in instead"
	}

	emailStyle, passwordStyle := styles.InputStyle, styles.InputStyle
	if s.focus == 0 {
		emailStyle = styles.FocusedInputStyle
	} else {
		passwordStyle = styles.FocusedInputStyle
	}

	rows := []string{
		styles.TitleStyle.Render("📚 readshelf"),
		styles.SubtitleStyle.Render(title),
		"",
		styles.LabelStyle.Render("Email"),
		emailStyle.Render(s.email.View()),
		styles.LabelStyle.Render("Password"),
		passwordStyle.Render(s.password.View()),
	}

	if s.submitting {
		rows = append(rows, "", styles.MutedStyle.Render("Working…"))
	}
	if s.errText != "" {
		rows = append(rows, "", styles.ErrorStyle.Render(s.errText))
	}
	if s.infoText != "" {
		rows = append(rows, "", styles.InfoStyle.Render(s.infoText))
	}

	rows = append(rows, "", styles.HelpStyle.Render(
		"enter: "+action+" • ctrl+t: "+alt+" • ctrl+c: quit",
	))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
