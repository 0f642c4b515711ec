// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package comment_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serg350/yamdb-final/internal/platform/apperr"
	"github.com/serg350/yamdb-final/internal/platform/sec"
	"github.com/serg350/yamdb-final/internal/review/comment"
	"github.com/serg350/yamdb-final/pkg/pagination"
)

// # Test Doubles

// reviewKey scopes a seeded review to its title, matching the storage
// contract that both IDs must agree.
type reviewKey struct {
	titleID  int
	reviewID int
}

type fakeRepository struct {
	reviews  map[reviewKey]bool
	comments map[int]*comment.Comment
	nextID   int
}

func newFakeRepository(keys ...reviewKey) *fakeRepository {
	repo := &fakeRepository{
		reviews:  map[reviewKey]bool{},
		comments: map[int]*comment.Comment{},
		nextID:   1,
	}
	for _, key := range keys {
		repo.reviews[key] = true
	}
	return repo
}

func (r *fakeRepository) ReviewExists(_ context.Context, titleID, reviewID int) (bool, error) {
	return r.reviews[reviewKey{titleID, reviewID}], nil
}

func (r *fakeRepository) ListByReview(_ context.Context, reviewID int, _ pagination.Params) ([]*comment.Comment, int, error) {
	result := make([]*comment.Comment, 0)
	for _, item := range r.comments {
		if item.ReviewID == reviewID {
			copied := *item
			result = append(result, &copied)
		}
	}
	return result, len(result), nil
}

func (r *fakeRepository) FindByID(_ context.Context, reviewID, commentID int) (*comment.Comment, error) {
	item, ok := r.comments[commentID]
	if !ok || item.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	copied := *item
	return &copied, nil
}

func (r *fakeRepository) Create(_ context.Context, item *comment.Comment) error {
	item.ID = r.nextID
	r.nextID++
	copied := *item
	r.comments[item.ID] = &copied
	return nil
}

func (r *fakeRepository) Update(_ context.Context, item *comment.Comment) error {
	if _, ok := r.comments[item.ID]; !ok {
		return apperr.NotFound("Comment")
	}
	copied := *item
	r.comments[item.ID] = &copied
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, reviewID, commentID int) error {
	item, ok := r.comments[commentID]
	if !ok || item.ReviewID != reviewID {
		return apperr.NotFound("Comment")
	}
	delete(r.comments, commentID)
	return nil
}

func memberActor(id string) *sec.Actor {
	return &sec.Actor{ID: id, Username: "member_" + id, Role: sec.RoleUser}
}

// # Behavior

/*
TestCreate_AssignsAuthor verifies authorship comes from the actor.
*/
func TestCreate_AssignsAuthor(t *testing.T) {
	repo := newFakeRepository(reviewKey{1, 10})
	service := comment.NewService(repo)

	created, err := service.Create(context.Background(), 1, 10, memberActor("u1"), "Agreed completely.")
	require.NoError(t, err)

	assert.Equal(t, "u1", created.AuthorID)
	assert.Equal(t, "member_u1", created.Author)
	assert.Equal(t, 10, created.ReviewID)
}

/*
TestCreate_MissingReview verifies 404 on a missing or misrouted parent: the
review must exist under exactly the title named in the URL.
*/
func TestCreate_MissingReview(t *testing.T) {
	repo := newFakeRepository(reviewKey{1, 10})
	service := comment.NewService(repo)

	// Unknown review under a known title.
	_, err := service.Create(context.Background(), 1, 99, memberActor("u1"), "text")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	// Known review addressed through the wrong title.
	_, err = service.Create(context.Background(), 2, 10, memberActor("u1"), "text")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestUpdate_OwnershipMatrix verifies who may edit an existing comment.
*/
func TestUpdate_OwnershipMatrix(t *testing.T) {
	tests := []struct {
		name       string
		actor      *sec.Actor
		wantStatus int // 0 means allowed
	}{
		{"author", memberActor("author-1"), 0},
		{"moderator", &sec.Actor{ID: "mod-1", Role: sec.RoleModerator}, 0},
		{"admin", &sec.Actor{ID: "adm-1", Role: sec.RoleAdmin}, 0},
		{"other_member", memberActor("intruder"), http.StatusForbidden},
		{"anonymous", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository(reviewKey{1, 10})
			service := comment.NewService(repo)

			seeded, err := service.Create(context.Background(), 1, 10, memberActor("author-1"), "original")
			require.NoError(t, err)

			text := "edited"
			updated, err := service.Update(context.Background(), 1, 10, seeded.ID, tt.actor, &text)

			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.Equal(t, "edited", updated.Text)
				assert.Equal(t, "author-1", updated.AuthorID)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
		})
	}
}

/*
TestDelete_AuthorOnly verifies a stranger cannot remove another member's
comment while the author can.
*/
func TestDelete_AuthorOnly(t *testing.T) {
	repo := newFakeRepository(reviewKey{1, 10})
	service := comment.NewService(repo)

	author := memberActor("u1")
	seeded, err := service.Create(context.Background(), 1, 10, author, "text")
	require.NoError(t, err)

	err = service.Delete(context.Background(), 1, 10, seeded.ID, memberActor("intruder"))
	require.Error(t, err)

	err = service.Delete(context.Background(), 1, 10, seeded.ID, author)
	require.NoError(t, err)

	_, err = service.Get(context.Background(), 1, 10, seeded.ID)
	assert.True(t, apperr.IsNotFound(err))
}
