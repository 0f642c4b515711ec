// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package review

import (
	"context"

	"github.com/serg350/yamdb-final/internal/platform/apperr"
	"github.com/serg350/yamdb-final/internal/platform/ctxutil"
	"github.com/serg350/yamdb-final/internal/platform/sec"
	"github.com/serg350/yamdb-final/pkg/pagination"
	"github.com/serg350/yamdb-final/pkg/pointer"
)

// Service implements review use cases. Object-level write access follows
// [sec.AdminModeratorOrAuthor]: the author, a moderator, or an admin may
// mutate an existing review.
type Service struct {
	repository  Repository
	invalidator RatingInvalidator
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, invalidator RatingInvalidator) *Service {
	return &Service{
		repository:  repository,
		invalidator: invalidator,
	}
}

// CreateInput holds the data for a new review.
type CreateInput struct {
	Text  string
	Score int
}

/*
Create persists a new review authored by the actor.

The author is always the authenticated actor; admins and moderators get no
bypass of the one-review-per-title rule for their own account.

Parameters:
  - context: context.Context
  - titleID: int
  - actor: *sec.Actor, the authenticated caller
  - input: CreateInput

Returns:
  - *Review: Created entity with the author's username resolved
  - error: NotFound on a missing title, Conflict on a duplicate review
*/
func (service *Service) Create(context context.Context, titleID int, actor *sec.Actor, input CreateInput) (*Review, error) {
	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, err
	}

	review := &Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     input.Text,
		Score:    input.Score,
	}

	if err := service.repository.Create(context, review); err != nil {
		return nil, err
	}
	review.Author = actor.Username

	service.dropRating(context, titleID)

	return review, nil
}

/*
List returns a page of a title's reviews.

Parameters:
  - context: context.Context
  - titleID: int
  - params: pagination.Params

Returns:
  - []*Review: Entities, newest first
  - int: Total matching rows
  - error: NotFound on a missing title, or storage failures
*/
func (service *Service) List(context context.Context, titleID int, params pagination.Params) ([]*Review, int, error) {
	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, 0, err
	}

	return service.repository.ListByTitle(context, titleID, params)
}

/*
Get returns a single review scoped to its title.

Parameters:
  - context: context.Context
  - titleID: int
  - reviewID: int

Returns:
  - *Review: Entity
  - error: NotFound when the title or the review is missing
*/
func (service *Service) Get(context context.Context, titleID, reviewID int) (*Review, error) {
	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, titleID, reviewID)
}

// UpdateInput holds the partial-update payload for a review. Nil fields are
// left untouched.
type UpdateInput struct {
	Text  *string
	Score *int
}

/*
Update applies a partial update to a review.

Parameters:
  - context: context.Context
  - titleID: int
  - reviewID: int
  - actor: *sec.Actor, the authenticated caller
  - input: UpdateInput

Returns:
  - *Review: Updated entity
  - error: NotFound, Forbidden when the actor is neither author, moderator
    nor admin, or persistence failures
*/
func (service *Service) Update(context context.Context, titleID, reviewID int, actor *sec.Actor, input UpdateInput) (*Review, error) {
	review, err := service.Get(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := sec.AdminModeratorOrAuthor.Authorize(actor, review.AuthorID); err != nil {
		return nil, err
	}

	review.Text = pointer.Fallback(input.Text, review.Text)
	review.Score = pointer.Fallback(input.Score, review.Score)

	if err := service.repository.Update(context, review); err != nil {
		return nil, err
	}

	service.dropRating(context, titleID)

	return review, nil
}

/*
Delete removes a review together with its comments.

Parameters:
  - context: context.Context
  - titleID: int
  - reviewID: int
  - actor: *sec.Actor, the authenticated caller

Returns:
  - error: NotFound, or Forbidden when the actor may not mutate the review
*/
func (service *Service) Delete(context context.Context, titleID, reviewID int, actor *sec.Actor) error {
	review, err := service.Get(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := sec.AdminModeratorOrAuthor.Authorize(actor, review.AuthorID); err != nil {
		return err
	}

	if err := service.repository.Delete(context, titleID, reviewID); err != nil {
		return err
	}

	service.dropRating(context, titleID)

	return nil
}

func (service *Service) ensureTitle(context context.Context, titleID int) error {
	exists, err := service.repository.TitleExists(context, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}

// dropRating invalidates the title's cached rating after a score mutation.
// The cache TTL bounds staleness when invalidation itself fails.
func (service *Service) dropRating(context context.Context, titleID int) {
	if err := service.invalidator.Invalidate(context, titleID); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "rating_invalidate_failed",
			"title_id", titleID, "error", err.Error())
	}
}
