package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// User is the identity the backend reports for a session.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is an issued token pair. AccessToken is empty when the
// backend requires email confirmation before the first sign-in.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// Auth is the identity surface: email/password sign-up and sign-in,
// token refresh, sign-out and current-user lookup.
type Auth struct {
	c *Client
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp registers a new identity. redirectTo, when set, is where the
// confirmation email should land the user.
func (a *Auth) SignUp(ctx context.Context, email, password, redirectTo string) (*Session, error) {
	var q url.Values
	if redirectTo != "" {
		q = url.Values{"redirect_to": {redirectTo}}
	}
	var s Session
	err := a.c.do(ctx, http.MethodPost, "/auth/v1/signup", q, "", "", credentials{email, password}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SignIn exchanges email/password for a session.
func (a *Auth) SignIn(ctx context.Context, email, password string) (*Session, error) {
	q := url.Values{"grant_type": {"password"}}
	var s Session
	err := a.c.do(ctx, http.MethodPost, "/auth/v1/token", q, "", "", credentials{email, password}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Refresh exchanges a refresh token for a fresh session.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	q := url.Values{"grant_type": {"refresh_token"}}
	body := map[string]string{"refresh_token": refreshToken}
	var s Session
	if err := a.c.do(ctx, http.MethodPost, "/auth/v1/token", q, "", "", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SignOut revokes the session server-side.
func (a *Auth) SignOut(ctx context.Context, accessToken string) error {
	return a.c.do(ctx, http.MethodPost, "/auth/v1/logout", nil, accessToken, "", nil, nil)
}

// UserInfo returns the identity behind an access token.
func (a *Auth) UserInfo(ctx context.Context, accessToken string) (*User, error) {
	var u User
	if err := a.c.do(ctx, http.MethodGet, "/auth/v1/user", nil, accessToken, "", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
