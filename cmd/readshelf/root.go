package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/readshelf/readshelf/pkg/app"
	"github.com/readshelf/readshelf/pkg/backend"
	"github.com/readshelf/readshelf/pkg/config"
	"github.com/readshelf/readshelf/pkg/services"
)

var rootCmd = &cobra.Command{
	Use:   "readshelf",
	Short: "Track your reading list from the terminal",
	Long:  "Keep a personal reading list: add, rate and review books with a TUI and CLI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		return a.Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newEnv builds the backend client and session the headless commands
// share. Logs go to stderr since there is no UI to fight with.
func newEnv() (*config.Config, *backend.Client, *services.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	client := backend.New(cfg.BackendURL, cfg.AnonKey)
	session := services.NewSession(client.Auth(), cfg.SessionCachePath(), log)
	return cfg, client, session, nil
}

// requireSession restores the cached session or fails with a hint.
func requireSession(ctx context.Context, session *services.Session) error {
	if session.Resolve(ctx) != services.EventSignedIn {
		return errors.New("not signed in, run 'readshelf login' first")
	}
	return nil
}
