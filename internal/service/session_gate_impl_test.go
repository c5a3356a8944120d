package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
	"github.com/alexanderramin/taskboard/internal/storage"
	"github.com/alexanderramin/taskboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionGate(t *testing.T, opts ...Option) (*SessionGate, *testutil.FailingBackend) {
	t.Helper()
	backend := testutil.NewFailingBackend()
	repo := repository.NewDocumentSessionRepo(storage.NewAdapter(backend, nil))
	return NewSessionGate(repo, opts...), backend
}

func TestLogin_FieldChecksInOrder(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
		reason   domain.AuthReason
	}{
		{"empty email wins over empty password", "   ", "", domain.AuthEmptyEmail},
		{"malformed email", "intern@demo", "intern123", domain.AuthInvalidEmailFormat},
		{"email with space", "in tern@demo.com", "intern123", domain.AuthInvalidEmailFormat},
		{"empty password", "intern@demo.com", "", domain.AuthEmptyPassword},
		{"wrong password", "intern@demo.com", "nope", domain.AuthInvalidCredentials},
		{"unknown user", "someone@demo.com", "intern123", domain.AuthInvalidCredentials},
		{"password is case sensitive", "intern@demo.com", "INTERN123", domain.AuthInvalidCredentials},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gate, backend := newSessionGate(t)
			err := gate.Login(context.Background(), tc.email, tc.password, true)
			require.Error(t, err)
			assert.True(t, domain.IsAuthReason(err, tc.reason), "got %v", err)
			assert.False(t, gate.IsAuthenticated(context.Background()))
			assert.Equal(t, 0, backend.WriteCount())
		})
	}
}

func TestLogin_SuccessWithRemember(t *testing.T) {
	gate, _ := newSessionGate(t)
	ctx := context.Background()

	require.NoError(t, gate.Login(ctx, "  Intern@Demo.com ", "intern123", true))

	assert.True(t, gate.IsAuthenticated(ctx))
	assert.Equal(t, "Intern@Demo.com", gate.CurrentEmail(ctx))
	email, ok := gate.RememberedEmail(ctx)
	assert.True(t, ok)
	assert.Equal(t, "Intern@Demo.com", email)
}

func TestLogin_WithoutRememberForgetsEmail(t *testing.T) {
	gate, _ := newSessionGate(t)
	ctx := context.Background()
	require.NoError(t, gate.Login(ctx, DemoEmail, DemoPassword, true))
	gate.Logout(ctx)

	require.NoError(t, gate.Login(ctx, DemoEmail, DemoPassword, false))
	_, ok := gate.RememberedEmail(ctx)
	assert.False(t, ok)
}

func TestLogout_KeepsRememberedEmail(t *testing.T) {
	gate, backend := newSessionGate(t)
	ctx := context.Background()
	require.NoError(t, gate.Login(ctx, DemoEmail, DemoPassword, true))

	gate.Logout(ctx)

	assert.False(t, gate.IsAuthenticated(ctx))
	assert.Empty(t, gate.CurrentEmail(ctx))
	_, stored := backend.Raw(repository.KeyAuth)
	assert.False(t, stored)
	email, ok := gate.RememberedEmail(ctx)
	assert.True(t, ok)
	assert.Equal(t, DemoEmail, email)
}

func TestLogin_DelayHonorsCancellation(t *testing.T) {
	gate, _ := newSessionGate(t, WithLoginDelay(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := gate.Login(ctx, DemoEmail, DemoPassword, false)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, gate.IsAuthenticated(context.Background()))
}

func TestLogin_FieldErrorsSkipDelay(t *testing.T) {
	gate, _ := newSessionGate(t, WithLoginDelay(time.Hour))

	err := gate.Login(context.Background(), "", "", false)
	assert.True(t, domain.IsAuthReason(err, domain.AuthEmptyEmail))
}

func TestLogin_ShortDelaySucceeds(t *testing.T) {
	gate, _ := newSessionGate(t, WithLoginDelay(5*time.Millisecond))
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, gate.Login(ctx, DemoEmail, DemoPassword, false))
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
	assert.True(t, gate.IsAuthenticated(ctx))
}

func TestIsAuthenticated_IgnoresLoggedOutRecord(t *testing.T) {
	gate, backend := newSessionGate(t)
	backend.Put(repository.KeyAuth, []byte(`{"loggedIn":false,"email":"intern@demo.com"}`))

	assert.False(t, gate.IsAuthenticated(context.Background()))
	assert.Empty(t, gate.CurrentEmail(context.Background()))
}
