// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serg350/yamdb-final/internal/platform/apperr"
	"github.com/serg350/yamdb-final/internal/platform/sec"
	"github.com/serg350/yamdb-final/internal/users/auth"
	"github.com/serg350/yamdb-final/internal/users/user"
)

// # Test Doubles

type fakeAccountRepository struct {
	byUsername map[string]*user.User
	createErr  error
}

func newFakeAccountRepository(accounts ...*user.User) *fakeAccountRepository {
	repo := &fakeAccountRepository{byUsername: map[string]*user.User{}}
	for _, account := range accounts {
		repo.byUsername[account.Username] = account
	}
	return repo
}

func (r *fakeAccountRepository) FindByUsername(_ context.Context, username string) (*user.User, error) {
	if account, ok := r.byUsername[username]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeAccountRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, account := range r.byUsername {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeAccountRepository) Create(_ context.Context, account *user.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *account
	r.byUsername[account.Username] = &copied
	return nil
}

func (r *fakeAccountRepository) SetConfirmationCode(_ context.Context, id, code string) error {
	for _, account := range r.byUsername {
		if account.ID == id {
			account.ConfirmationCode = code
			return nil
		}
	}
	return apperr.NotFound("User")
}

func (r *fakeAccountRepository) ConsumeConfirmationCode(_ context.Context, username, code string) (bool, error) {
	account, ok := r.byUsername[username]
	if !ok {
		return false, nil
	}
	if account.ConfirmationCode == "" || account.ConfirmationCode != code {
		return false, nil
	}
	account.ConfirmationCode = ""
	return true, nil
}

type fakeCooldownRepository struct {
	wait time.Duration
}

func (r *fakeCooldownRepository) Acquire(_ context.Context, _ string) (time.Duration, error) {
	return r.wait, nil
}

type fakeTokenIssuer struct {
	lastInput sec.IssueInput
}

func (i *fakeTokenIssuer) IssueAccessToken(input sec.IssueInput, _ time.Duration) (string, error) {
	i.lastInput = input
	return "signed-token", nil
}

type fakeMailSender struct {
	sent    int
	lastTo  string
	failure error
}

func (s *fakeMailSender) Send(_ context.Context, to, _, _ string) error {
	if s.failure != nil {
		return s.failure
	}
	s.sent++
	s.lastTo = to
	return nil
}

type authFixture struct {
	accounts *fakeAccountRepository
	cooldown *fakeCooldownRepository
	issuer   *fakeTokenIssuer
	mailer   *fakeMailSender
	service  *auth.Service
}

func newAuthFixture(accounts ...*user.User) *authFixture {
	f := &authFixture{
		accounts: newFakeAccountRepository(accounts...),
		cooldown: &fakeCooldownRepository{},
		issuer:   &fakeTokenIssuer{},
		mailer:   &fakeMailSender{},
	}
	f.service = auth.NewService(f.accounts, f.cooldown, f.issuer, f.mailer)
	return f
}

// # Signup

/*
TestSignup_NewAccount verifies registration of a fresh identity pair: the
account is created with the member role and the code is emailed.
*/
func TestSignup_NewAccount(t *testing.T) {
	f := newAuthFixture()

	result, err := f.service.Signup(context.Background(), auth.SignupInput{
		Username: "serg",
		Email:    "serg@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "serg", result.Username)
	assert.Equal(t, "serg@example.com", result.Email)

	created := f.accounts.byUsername["serg"]
	require.NotNil(t, created)
	assert.Equal(t, sec.RoleUser, created.Role)
	assert.NotEmpty(t, created.ConfirmationCode)

	assert.Equal(t, 1, f.mailer.sent)
	assert.Equal(t, "serg@example.com", f.mailer.lastTo)
}

/*
TestSignup_Idempotent verifies that repeating the same identity pair issues a
fresh code instead of failing.
*/
func TestSignup_Idempotent(t *testing.T) {
	f := newAuthFixture(&user.User{
		ID:               "id-1",
		Username:         "serg",
		Email:            "serg@example.com",
		Role:             sec.RoleUser,
		ConfirmationCode: "old-code",
	})

	_, err := f.service.Signup(context.Background(), auth.SignupInput{
		Username: "serg",
		Email:    "serg@example.com",
	})
	require.NoError(t, err)

	account := f.accounts.byUsername["serg"]
	assert.NotEmpty(t, account.ConfirmationCode)
	assert.NotEqual(t, "old-code", account.ConfirmationCode)
	assert.Equal(t, 1, f.mailer.sent)
}

/*
TestSignup_Conflicts verifies half-matching identity pairs are rejected, with
the email collision reported first.
*/
func TestSignup_Conflicts(t *testing.T) {
	existing := &user.User{ID: "id-1", Username: "serg", Email: "serg@example.com"}

	tests := []struct {
		name     string
		username string
		email    string
		wantMsg  string
	}{
		{"email_taken", "someone_else", "serg@example.com", "Email is already registered"},
		{"username_taken", "serg", "other@example.com", "Username is already taken"},
		// Both fields collide with different accounts; email wins.
		{"email_checked_first", "taken2", "serg@example.com", "Email is already registered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(existing, &user.User{ID: "id-2", Username: "taken2", Email: "two@example.com"})

			_, err := f.service.Signup(context.Background(), auth.SignupInput{
				Username: tt.username,
				Email:    tt.email,
			})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "CONFLICT", ae.Code)
			assert.Equal(t, tt.wantMsg, ae.Message)
			assert.Zero(t, f.mailer.sent)
		})
	}
}

/*
TestSignup_Cooldown verifies that a recent delivery rate-limits the resend.
*/
func TestSignup_Cooldown(t *testing.T) {
	f := newAuthFixture()
	f.cooldown.wait = 42 * time.Second

	_, err := f.service.Signup(context.Background(), auth.SignupInput{
		Username: "serg",
		Email:    "serg@example.com",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusTooManyRequests, ae.HTTPStatus)
	assert.Zero(t, f.mailer.sent)
}

/*
TestSignup_MailFailure verifies that a failed delivery surfaces as 503 while
the persisted code remains valid for a later retry.
*/
func TestSignup_MailFailure(t *testing.T) {
	f := newAuthFixture()
	f.mailer.failure = errors.New("smtp: connection refused")

	_, err := f.service.Signup(context.Background(), auth.SignupInput{
		Username: "serg",
		Email:    "serg@example.com",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusServiceUnavailable, ae.HTTPStatus)

	// The account and its code survived the delivery failure.
	account := f.accounts.byUsername["serg"]
	require.NotNil(t, account)
	assert.NotEmpty(t, account.ConfirmationCode)
}

// # Token Exchange

/*
TestObtainToken_Success verifies the code exchange: claims carry the account
identity and the code is consumed.
*/
func TestObtainToken_Success(t *testing.T) {
	f := newAuthFixture(&user.User{
		ID:               "id-1",
		Username:         "serg",
		Email:            "serg@example.com",
		Role:             sec.RoleModerator,
		ConfirmationCode: "code-123",
	})

	token, err := f.service.ObtainToken(context.Background(), "serg", "code-123")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)

	assert.Equal(t, "id-1", f.issuer.lastInput.UserID)
	assert.Equal(t, "moderator", f.issuer.lastInput.Role)

	// Single use: the same code must not work twice.
	_, err = f.service.ObtainToken(context.Background(), "serg", "code-123")
	require.Error(t, err)
}

/*
TestObtainToken_Failures verifies the rejection branches of the exchange.
*/
func TestObtainToken_Failures(t *testing.T) {
	tests := []struct {
		name       string
		account    *user.User
		username   string
		code       string
		wantStatus int
	}{
		{
			name:       "unknown_user",
			account:    nil,
			username:   "ghost",
			code:       "whatever",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "no_active_code",
			account:    &user.User{ID: "id-1", Username: "serg", ConfirmationCode: ""},
			username:   "serg",
			code:       "whatever",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong_code",
			account:    &user.User{ID: "id-1", Username: "serg", ConfirmationCode: "right"},
			username:   "serg",
			code:       "wrong",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *authFixture
			if tt.account != nil {
				f = newAuthFixture(tt.account)
			} else {
				f = newAuthFixture()
			}

			_, err := f.service.ObtainToken(context.Background(), tt.username, tt.code)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
		})
	}
}

/*
TestObtainToken_WrongCodePreservesStored verifies a failed exchange does not
burn the stored code.
*/
func TestObtainToken_WrongCodePreservesStored(t *testing.T) {
	f := newAuthFixture(&user.User{
		ID:               "id-1",
		Username:         "serg",
		ConfirmationCode: "right",
	})

	_, err := f.service.ObtainToken(context.Background(), "serg", "wrong")
	require.Error(t, err)

	// The correct code still works afterwards.
	token, err := f.service.ObtainToken(context.Background(), "serg", "right")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
}
