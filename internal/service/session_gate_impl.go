package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

// Demo credentials accepted by the gate.
const (
	DemoEmail    = "intern@demo.com"
	DemoPassword = "intern123"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SessionGate decides whether the board may be shown. It is independent of
// the board state.
type SessionGate struct {
	repo repository.SessionRepo
	opts options
}

func NewSessionGate(repo repository.SessionRepo, opts ...Option) *SessionGate {
	return &SessionGate{repo: repo, opts: buildOptions(opts)}
}

// Login validates the form fields, waits for the configured delay, then
// checks the credentials. Field errors are reported without waiting.
func (g *SessionGate) Login(ctx context.Context, email, password string, remember bool) (err error) {
	start := time.Now()
	defer func() { observe(ctx, g.opts.observer, "login", start, err, map[string]any{"remember": remember}) }()

	email = strings.TrimSpace(email)
	switch {
	case email == "":
		return &domain.AuthError{Reason: domain.AuthEmptyEmail}
	case !emailPattern.MatchString(email):
		return &domain.AuthError{Reason: domain.AuthInvalidEmailFormat}
	case password == "":
		return &domain.AuthError{Reason: domain.AuthEmptyPassword}
	}

	if err := g.wait(ctx); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if strings.ToLower(email) != DemoEmail || password != DemoPassword {
		return &domain.AuthError{Reason: domain.AuthInvalidCredentials}
	}

	if remember {
		g.repo.SaveRemembered(ctx, domain.RememberedEmail{Email: email})
	} else {
		g.repo.ClearRemembered(ctx)
	}
	g.repo.SaveSession(ctx, domain.Session{LoggedIn: true, Email: email})
	return nil
}

func (g *SessionGate) wait(ctx context.Context) error {
	if g.opts.loginDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(g.opts.loginDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Logout removes the session record. The remembered email is kept.
func (g *SessionGate) Logout(ctx context.Context) {
	start := time.Now()
	g.repo.ClearSession(ctx)
	observe(ctx, g.opts.observer, "logout", start, nil, nil)
}

func (g *SessionGate) IsAuthenticated(ctx context.Context) bool {
	s, ok := g.repo.LoadSession(ctx)
	return ok && s.LoggedIn
}

// CurrentEmail is the signed-in email, or "" when signed out.
func (g *SessionGate) CurrentEmail(ctx context.Context) string {
	s, ok := g.repo.LoadSession(ctx)
	if !ok || !s.LoggedIn {
		return ""
	}
	return s.Email
}

// RememberedEmail returns the email saved by a "remember me" login.
func (g *SessionGate) RememberedEmail(ctx context.Context) (string, bool) {
	r, ok := g.repo.LoadRemembered(ctx)
	return r.Email, ok
}
