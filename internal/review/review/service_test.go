// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package review_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serg350/yamdb-final/internal/platform/apperr"
	"github.com/serg350/yamdb-final/internal/platform/sec"
	"github.com/serg350/yamdb-final/internal/review/review"
	"github.com/serg350/yamdb-final/pkg/pagination"
)

// # Test Doubles

type fakeRepository struct {
	titles  map[int]bool
	reviews map[int]*review.Review
	nextID  int
}

func newFakeRepository(titleIDs ...int) *fakeRepository {
	repo := &fakeRepository{
		titles:  map[int]bool{},
		reviews: map[int]*review.Review{},
		nextID:  1,
	}
	for _, id := range titleIDs {
		repo.titles[id] = true
	}
	return repo
}

func (r *fakeRepository) TitleExists(_ context.Context, titleID int) (bool, error) {
	return r.titles[titleID], nil
}

func (r *fakeRepository) ListByTitle(_ context.Context, titleID int, _ pagination.Params) ([]*review.Review, int, error) {
	result := make([]*review.Review, 0)
	for _, item := range r.reviews {
		if item.TitleID == titleID {
			copied := *item
			result = append(result, &copied)
		}
	}
	return result, len(result), nil
}

func (r *fakeRepository) FindByID(_ context.Context, titleID, reviewID int) (*review.Review, error) {
	item, ok := r.reviews[reviewID]
	if !ok || item.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	copied := *item
	return &copied, nil
}

func (r *fakeRepository) Create(_ context.Context, item *review.Review) error {
	for _, existing := range r.reviews {
		if existing.TitleID == item.TitleID && existing.AuthorID == item.AuthorID {
			return apperr.Conflict("You have already reviewed this title")
		}
	}
	item.ID = r.nextID
	r.nextID++
	copied := *item
	r.reviews[item.ID] = &copied
	return nil
}

func (r *fakeRepository) Update(_ context.Context, item *review.Review) error {
	if _, ok := r.reviews[item.ID]; !ok {
		return apperr.NotFound("Review")
	}
	copied := *item
	r.reviews[item.ID] = &copied
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, titleID, reviewID int) error {
	item, ok := r.reviews[reviewID]
	if !ok || item.TitleID != titleID {
		return apperr.NotFound("Review")
	}
	delete(r.reviews, reviewID)
	return nil
}

type fakeInvalidator struct {
	invalidated []int
}

func (i *fakeInvalidator) Invalidate(_ context.Context, titleID int) error {
	i.invalidated = append(i.invalidated, titleID)
	return nil
}

func memberActor(id string) *sec.Actor {
	return &sec.Actor{ID: id, Username: "member_" + id, Role: sec.RoleUser}
}

// # Creation

/*
TestCreate_AssignsAuthor verifies the author always comes from the actor and
the title's cached rating is dropped.
*/
func TestCreate_AssignsAuthor(t *testing.T) {
	repo := newFakeRepository(1)
	invalidator := &fakeInvalidator{}
	service := review.NewService(repo, invalidator)

	created, err := service.Create(context.Background(), 1, memberActor("u1"), review.CreateInput{
		Text:  "Gripping from the first page.",
		Score: 9,
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", created.AuthorID)
	assert.Equal(t, "member_u1", created.Author)
	assert.Equal(t, 9, created.Score)
	assert.Equal(t, []int{1}, invalidator.invalidated)
}

/*
TestCreate_MissingTitle verifies a review against an unknown title is 404.
*/
func TestCreate_MissingTitle(t *testing.T) {
	service := review.NewService(newFakeRepository(), &fakeInvalidator{})

	_, err := service.Create(context.Background(), 77, memberActor("u1"), review.CreateInput{
		Text:  "text",
		Score: 5,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestCreate_SecondReviewConflicts verifies the one-review-per-title rule, and
that it applies to every role equally.
*/
func TestCreate_SecondReviewConflicts(t *testing.T) {
	repo := newFakeRepository(1)
	service := review.NewService(repo, &fakeInvalidator{})

	actor := &sec.Actor{ID: "adm-1", Username: "adm", Role: sec.RoleAdmin}

	_, err := service.Create(context.Background(), 1, actor, review.CreateInput{Text: "first", Score: 8})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), 1, actor, review.CreateInput{Text: "second", Score: 3})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// A different title is fine.
	repo.titles[2] = true
	_, err = service.Create(context.Background(), 2, actor, review.CreateInput{Text: "other title", Score: 7})
	assert.NoError(t, err)
}

// # Mutation Rights

/*
TestUpdate_OwnershipMatrix verifies who may edit an existing review.
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
			repo := newFakeRepository(1)
			invalidator := &fakeInvalidator{}
			service := review.NewService(repo, invalidator)

			seeded, err := service.Create(context.Background(), 1, memberActor("author-1"), review.CreateInput{
				Text:  "original",
				Score: 5,
			})
			require.NoError(t, err)
			invalidator.invalidated = nil

			text := "edited"
			score := 10
			updated, err := service.Update(context.Background(), 1, seeded.ID, tt.actor, review.UpdateInput{
				Text:  &text,
				Score: &score,
			})

			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.Equal(t, "edited", updated.Text)
				assert.Equal(t, 10, updated.Score)
				// The author never changes on edit.
				assert.Equal(t, "author-1", updated.AuthorID)
				assert.Equal(t, []int{1}, invalidator.invalidated)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
			assert.Empty(t, invalidator.invalidated)
		})
	}
}

/*
TestUpdate_PartialKeepsScore verifies a text-only edit leaves the score alone.
*/
func TestUpdate_PartialKeepsScore(t *testing.T) {
	repo := newFakeRepository(1)
	service := review.NewService(repo, &fakeInvalidator{})

	author := memberActor("u1")
	seeded, err := service.Create(context.Background(), 1, author, review.CreateInput{Text: "original", Score: 7})
	require.NoError(t, err)

	text := "revised"
	updated, err := service.Update(context.Background(), 1, seeded.ID, author, review.UpdateInput{Text: &text})
	require.NoError(t, err)

	assert.Equal(t, "revised", updated.Text)
	assert.Equal(t, 7, updated.Score)
}

/*
TestDelete_InvalidatesRating verifies deletion rights and cache invalidation.
*/
func TestDelete_InvalidatesRating(t *testing.T) {
	repo := newFakeRepository(1)
	invalidator := &fakeInvalidator{}
	service := review.NewService(repo, invalidator)

	author := memberActor("u1")
	seeded, err := service.Create(context.Background(), 1, author, review.CreateInput{Text: "t", Score: 4})
	require.NoError(t, err)
	invalidator.invalidated = nil

	// A stranger cannot delete it.
	err = service.Delete(context.Background(), 1, seeded.ID, memberActor("intruder"))
	require.Error(t, err)

	// A moderator can.
	err = service.Delete(context.Background(), 1, seeded.ID, &sec.Actor{ID: "mod-1", Role: sec.RoleModerator})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, invalidator.invalidated)

	_, err = service.Get(context.Background(), 1, seeded.ID)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestGet_WrongTitleScope verifies a review is unreachable through another
title's URL.
*/
func TestGet_WrongTitleScope(t *testing.T) {
	repo := newFakeRepository(1, 2)
	service := review.NewService(repo, &fakeInvalidator{})

	seeded, err := service.Create(context.Background(), 1, memberActor("u1"), review.CreateInput{Text: "t", Score: 6})
	require.NoError(t, err)

	_, err = service.Get(context.Background(), 2, seeded.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
