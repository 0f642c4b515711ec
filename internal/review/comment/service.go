// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package comment

import (
	"context"

	"github.com/serg350/yamdb-final/internal/platform/apperr"
	"github.com/serg350/yamdb-final/internal/platform/sec"
	"github.com/serg350/yamdb-final/pkg/pagination"
	"github.com/serg350/yamdb-final/pkg/pointer"
)

// Service implements comment use cases. Object-level write access follows
// [sec.AdminModeratorOrAuthor], same as reviews.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
Create persists a new comment authored by the actor.

Parameters:
  - context: context.Context
  - titleID: int
  - reviewID: int
  - actor: *sec.Actor, the authenticated caller
  - text: string

Returns:
  - *Comment: Created entity with the author's username resolved
  - error: NotFound when the parent review is missing
*/
func (service *Service) Create(context context.Context, titleID, reviewID int, actor *sec.Actor, text string) (*Comment, error) {
	if err := service.ensureReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     text,
	}

	if err := service.repository.Create(context, comment); err != nil {
		return nil, err
	}
	comment.Author = actor.Username

	return comment, nil
}

/*
List returns a page of a review's comments.

Parameters:
  - context: context.Context
  - titleID: int
  - reviewID: int
  - params: pagination.Params

Returns:
  - []*Comment: Entities, newest first
  - int: Total matching rows
  - error: NotFound when the parent review is missing
*/
func (service *Service) List(context context.Context, titleID, reviewID int, params pagination.Params) ([]*Comment, int, error) {
	if err := service.ensureReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	return service.repository.ListByReview(context, reviewID, params)
}

/*
Get returns a single comment scoped to its review.

Parameters:
  - context: context.Context
  - titleID: int
  - reviewID: int
  - commentID: int

Returns:
  - *Comment: Entity
  - error: NotFound when any ancestor or the comment itself is missing
*/
func (service *Service) Get(context context.Context, titleID, reviewID, commentID int) (*Comment, error) {
	if err := service.ensureReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, reviewID, commentID)
}

/*
Update applies a partial update to a comment.

Parameters:
  - context: context.Context
  - titleID: int
  - reviewID: int
  - commentID: int
  - actor: *sec.Actor, the authenticated caller
  - text: *string, nil leaves the text untouched

Returns:
  - *Comment: Updated entity
  - error: NotFound, or Forbidden when the actor may not mutate the comment
*/
func (service *Service) Update(context context.Context, titleID, reviewID, commentID int, actor *sec.Actor, text *string) (*Comment, error) {
	comment, err := service.Get(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := sec.AdminModeratorOrAuthor.Authorize(actor, comment.AuthorID); err != nil {
		return nil, err
	}

	comment.Text = pointer.Fallback(text, comment.Text)

	if err := service.repository.Update(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

/*
Delete removes a comment.

Parameters:
  - context: context.Context
  - titleID: int
  - reviewID: int
  - commentID: int
  - actor: *sec.Actor, the authenticated caller

Returns:
  - error: NotFound, or Forbidden when the actor may not mutate the comment
*/
func (service *Service) Delete(context context.Context, titleID, reviewID, commentID int, actor *sec.Actor) error {
	comment, err := service.Get(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := sec.AdminModeratorOrAuthor.Authorize(actor, comment.AuthorID); err != nil {
		return err
	}

	return service.repository.Delete(context, reviewID, commentID)
}

func (service *Service) ensureReview(context context.Context, titleID, reviewID int) error {
	exists, err := service.repository.ReviewExists(context, titleID, reviewID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Review")
	}
	return nil
}
