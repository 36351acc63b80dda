// Package services holds the client-side session state and the
// commands screens run against the backend.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/readshelf/readshelf/pkg/backend"
)

// AuthEvent is an auth-state-change notification.
type AuthEvent string

const (
	EventSignedIn       AuthEvent = "signed_in"
	EventSignedOut      AuthEvent = "signed_out"
	EventTokenRefreshed AuthEvent = "token_refreshed"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// Handler receives auth-state changes. The session is nil after
// sign-out.
type Handler func(AuthEvent, *backend.Session)

// Session owns the current user/session state. Attach handlers with
// Subscribe before calling Resolve so no change fired during the
// initial resolution is missed; both the change path and the initial
// resolution write the same state and clear the loading flag.
type Session struct {
	auth      *backend.Auth
	cachePath string
	log       *slog.Logger

	mu      sync.Mutex
	cur     *backend.Session
	loading bool
	subs    map[int]Handler
	nextSub int
	refresh *time.Timer
	closed  bool
}

func NewSession(auth *backend.Auth, cachePath string, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		auth:      auth,
		cachePath: cachePath,
		log:       log,
		loading:   true,
		subs:      make(map[int]Handler),
	}
}

// Subscribe registers a handler and returns its unsubscribe function.
func (s *Session) Subscribe(h Handler) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = h
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Resolve restores the cached session, revalidating it with a refresh
// grant, and clears the loading flag. It returns the event it emitted.
func (s *Session) Resolve(ctx context.Context) AuthEvent {
	cached, err := s.loadCache()
	if err != nil {
		s.log.Warn("session cache unreadable", "err", err)
	}
	if cached == nil || cached.RefreshToken == "" {
		s.set(nil, EventSignedOut)
		return EventSignedOut
	}
	sess, err := s.auth.Refresh(ctx, cached.RefreshToken)
	if err != nil {
		s.log.Info("cached session rejected", "err", err)
		s.set(nil, EventSignedOut)
		return EventSignedOut
	}
	s.set(sess, EventSignedIn)
	return EventSignedIn
}

// SignIn authenticates with email/password. Credential failures come
// back as ErrInvalidCredentials, never as a panic or raw backend error.
func (s *Session) SignIn(ctx context.Context, email, password string) error {
	sess, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return mapAuthErr(err)
	}
	s.set(sess, EventSignedIn)
	return nil
}

// SignUp registers a new identity. confirmed is false when the backend
// wants the email confirmed before the first sign-in; in that case no
// session is established.
func (s *Session) SignUp(ctx context.Context, email, password, redirectTo string) (confirmed bool, err error) {
	sess, err := s.auth.SignUp(ctx, email, password, redirectTo)
	if err != nil {
		return false, mapAuthErr(err)
	}
	if sess.AccessToken == "" {
		return false, nil
	}
	s.set(sess, EventSignedIn)
	return true, nil
}

// SignOut revokes the backend session and clears local state. Where the
// UI goes afterwards is the caller's business.
func (s *Session) SignOut(ctx context.Context) error {
	s.mu.Lock()
	cur := s.cur
	s.mu.Unlock()
	if cur != nil {
		if err := s.auth.SignOut(ctx, cur.AccessToken); err != nil {
			// Local state clears regardless; the token ages out.
			s.log.Warn("server-side sign-out failed", "err", err)
		}
	}
	s.set(nil, EventSignedOut)
	return nil
}

// Current returns the active session, or nil.
func (s *Session) Current() *backend.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Loading reports whether the initial resolution is still pending.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) AccessToken() string {
	if cur := s.Current(); cur != nil {
		return cur.AccessToken
	}
	return ""
}

func (s *Session) UserID() string {
	if cur := s.Current(); cur != nil {
		return cur.User.ID
	}
	return ""
}

// Close releases the refresh timer and drops all subscribers.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.refresh != nil {
		s.refresh.Stop()
		s.refresh = nil
	}
	s.subs = make(map[int]Handler)
}

func (s *Session) set(sess *backend.Session, ev AuthEvent) {
	s.mu.Lock()
	s.cur = sess
	s.loading = false
	if s.refresh != nil {
		s.refresh.Stop()
		s.refresh = nil
	}
	if sess != nil && !s.closed {
		if d, ok := refreshIn(sess.AccessToken); ok {
			s.refresh = time.AfterFunc(d, s.refreshNow)
		}
	}
	if sess == nil {
		os.Remove(s.cachePath)
	} else if err := s.saveCache(sess); err != nil {
		s.log.Warn("session cache write failed", "err", err)
	}
	handlers := make([]Handler, 0, len(s.subs))
	for _, h := range s.subs {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h(ev, sess)
	}
}

func (s *Session) refreshNow() {
	s.mu.Lock()
	cur := s.cur
	closed := s.closed
	s.mu.Unlock()
	if cur == nil || closed {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sess, err := s.auth.Refresh(ctx, cur.RefreshToken)
	if err != nil {
		s.log.Warn("token refresh failed", "err", err)
		s.set(nil, EventSignedOut)
		return
	}
	s.set(sess, EventTokenRefreshed)
}

// refreshIn derives the refresh delay from the access token's expiry
// claim. The token is not verified here; the client has no signing key
// and only needs the timestamp.
func refreshIn(accessToken string) (time.Duration, bool) {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(accessToken, claims)
	if err != nil {
		return 0, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, false
	}
	d := time.Until(exp.Time) - time.Minute
	if d < 10*time.Second {
		d = 10 * time.Second
	}
	return d, true
}

func (s *Session) loadCache() (*backend.Session, error) {
	buf, err := os.ReadFile(s.cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var sess backend.Session
	if err := json.Unmarshal(buf, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Session) saveCache(sess *backend.Session) error {
	buf, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.cachePath, buf, 0o600)
}

// mapAuthErr converts the two known collaborator failures into
// sentinels the UI can phrase kindly; anything else passes through.
func mapAuthErr(err error) error {
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	msg := strings.ToLower(apiErr.Message)
	code := strings.ToLower(apiErr.Code)
	switch {
	case code == "invalid_credentials" || strings.Contains(msg, "invalid login credentials") || strings.Contains(msg, "invalid grant"):
		return ErrInvalidCredentials
	case code == "user_already_exists" || strings.Contains(msg, "already registered") || strings.Contains(msg, "already exists"):
		return ErrEmailTaken
	}
	return err
}

// FriendlyError phrases an auth failure for the user.
func FriendlyError(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrEmailTaken):
		return "That email is already registered. Try signing in."
	default:
		return "Something went wrong. Please try again."
	}
}
