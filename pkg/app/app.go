// Package app wires the backend client, session state and screens into
// the terminal UI.
package app

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/readshelf/readshelf/pkg/app/screens"
	"github.com/readshelf/readshelf/pkg/backend"
	"github.com/readshelf/readshelf/pkg/config"
	"github.com/readshelf/readshelf/pkg/services"
)

type App struct {
	cfg     *config.Config
	session *services.Session
	books   *backend.Books
	logFile *os.File
}

func New(cfg *config.Config) (*App, error) {
	// Stdout belongs to the UI; logs go to the state dir.
	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	log := slog.New(slog.NewJSONHandler(logFile, nil))

	client := backend.New(cfg.BackendURL, cfg.AnonKey)
	session := services.NewSession(client.Auth(), cfg.SessionCachePath(), log)

	return &App{
		cfg:     cfg,
		session: session,
		books:   client.Books(),
		logFile: logFile,
	}, nil
}

func (a *App) Run() error {
	defer a.logFile.Close()
	defer a.session.Close()

	root := screens.NewRootScreen(a.session, a.books, a.cfg.SignupRedirectURL)
	p := tea.NewProgram(root, tea.WithAltScreen())
	_, err := p.Run()
	root.Teardown()
	return err
}
