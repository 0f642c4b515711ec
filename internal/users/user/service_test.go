// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serg350/yamdb-final/internal/platform/apperr"
	"github.com/serg350/yamdb-final/internal/platform/sec"
	"github.com/serg350/yamdb-final/internal/users/user"
	"github.com/serg350/yamdb-final/pkg/pagination"
)

// # Test Doubles

type fakeRepository struct {
	byID map[string]*user.User
}

func newFakeRepository(accounts ...*user.User) *fakeRepository {
	repo := &fakeRepository{byID: map[string]*user.User{}}
	for _, account := range accounts {
		repo.byID[account.ID] = account
	}
	return repo
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*user.User, error) {
	if account, ok := r.byID[id]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeRepository) FindByUsername(_ context.Context, username string) (*user.User, error) {
	for _, account := range r.byID {
		if account.Username == username {
			copied := *account
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeRepository) List(_ context.Context, _ pagination.Params, _ string) ([]*user.User, int, error) {
	accounts := make([]*user.User, 0, len(r.byID))
	for _, account := range r.byID {
		copied := *account
		accounts = append(accounts, &copied)
	}
	return accounts, len(accounts), nil
}

func (r *fakeRepository) Create(_ context.Context, account *user.User) error {
	for _, existing := range r.byID {
		if existing.Username == account.Username {
			return apperr.Conflict("Username is already taken")
		}
	}
	copied := *account
	r.byID[account.ID] = &copied
	return nil
}

func (r *fakeRepository) Update(_ context.Context, account *user.User) error {
	if _, ok := r.byID[account.ID]; !ok {
		return apperr.NotFound("User")
	}
	copied := *account
	r.byID[account.ID] = &copied
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, username string) error {
	for id, account := range r.byID {
		if account.Username == username {
			delete(r.byID, id)
			return nil
		}
	}
	return apperr.NotFound("User")
}

// # Administrative Directory

/*
TestCreate_DefaultRole verifies that an omitted role falls back to the member
role and the generated ID is populated.
*/
func TestCreate_DefaultRole(t *testing.T) {
	service := user.NewService(newFakeRepository())

	created, err := service.Create(context.Background(), user.CreateInput{
		Username: "serg",
		Email:    "serg@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleUser, created.Role)
	assert.NotEmpty(t, created.ID)
}

/*
TestCreate_ExplicitRole verifies administrative role assignment at enrollment.
*/
func TestCreate_ExplicitRole(t *testing.T) {
	service := user.NewService(newFakeRepository())

	created, err := service.Create(context.Background(), user.CreateInput{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     "moderator",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, created.Role)
}

/*
TestUpdate_AdminCanChangeRole verifies the administrative partial update,
including role promotion.
*/
func TestUpdate_AdminCanChangeRole(t *testing.T) {
	repo := newFakeRepository(&user.User{
		ID:       "id-1",
		Username: "serg",
		Email:    "serg@example.com",
		Role:     sec.RoleUser,
		Bio:      "original bio",
	})
	service := user.NewService(repo)

	newRole := "moderator"
	newEmail := "new@example.com"
	updated, err := service.Update(context.Background(), "serg", user.UpdateInput{
		Email: &newEmail,
		Role:  &newRole,
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleModerator, updated.Role)
	assert.Equal(t, "new@example.com", updated.Email)
	// Untouched fields survive the partial update.
	assert.Equal(t, "original bio", updated.Bio)
}

// # Self-Service Profile

/*
TestUpdateMe_PreservesRole verifies that the self-service update can never
change the caller's role or identity fields beyond the profile.
*/
func TestUpdateMe_PreservesRole(t *testing.T) {
	repo := newFakeRepository(&user.User{
		ID:       "id-1",
		Username: "serg",
		Email:    "serg@example.com",
		Role:     sec.RoleModerator,
	})
	service := user.NewService(repo)

	bio := "reads a lot"
	updated, err := service.UpdateMe(context.Background(), "id-1", user.ProfileInput{
		Bio: &bio,
	})
	require.NoError(t, err)

	assert.Equal(t, "reads a lot", updated.Bio)
	assert.Equal(t, sec.RoleModerator, updated.Role)
	assert.Equal(t, "serg", updated.Username)
}

/*
TestUpdateMe_UnknownActor verifies 404 when the account vanished after token
issuance.
*/
func TestUpdateMe_UnknownActor(t *testing.T) {
	service := user.NewService(newFakeRepository())

	_, err := service.UpdateMe(context.Background(), "ghost", user.ProfileInput{})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
