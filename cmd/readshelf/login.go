package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/readshelf/readshelf/pkg/services"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		email, password, err := promptCredentials(email, password)
		if err != nil {
			return err
		}

		_, _, session, err := newEnv()
		if err != nil {
			return err
		}
		defer session.Close()

		if err := session.SignIn(context.Background(), email, password); err != nil {
			return errors.New(services.FriendlyError(err))
		}
		fmt.Printf("✅ Signed in as %s\n", email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the cached session",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, session, err := newEnv()
		if err != nil {
			return err
		}
		defer session.Close()

		ctx := context.Background()
		if session.Resolve(ctx) != services.EventSignedIn {
			fmt.Println("Already signed out.")
			return nil
		}
		session.SignOut(ctx)
		fmt.Println("👋 Signed out.")
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		email, password, err := promptCredentials(email, password)
		if err != nil {
			return err
		}

		cfg, _, session, err := newEnv()
		if err != nil {
			return err
		}
		defer session.Close()

		confirmed, err := session.SignUp(context.Background(), email, password, cfg.SignupRedirectURL)
		if err != nil {
			return errors.New(services.FriendlyError(err))
		}
		if !confirmed {
			fmt.Println("📧 Check your email to confirm the account, then run 'readshelf login'.")
			return nil
		}
		fmt.Printf("✅ Signed up and in as %s\n", email)
		return nil
	},
}

func promptCredentials(email, password string) (string, string, error) {
	reader := bufio.NewReader(os.Stdin)
	var err error
	if email == "" {
		fmt.Print("Email: ")
		email, err = reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
	}
	if password == "" {
		fmt.Print("Password: ")
		password, err = reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
	}
	email = strings.TrimSpace(email)
	password = strings.TrimRight(password, "\r\n")
	if email == "" || password == "" {
		return "", "", errors.New("email and password are required")
	}
	return email, password, nil
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringP("email", "e", "", "Account email")
		c.Flags().StringP("password", "p", "", "Account password (prompted when omitted)")
	}
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(signupCmd)
}
