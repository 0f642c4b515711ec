// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package title

import (
	"context"

	"github.com/serg350/yamdb-final/pkg/pagination"
	"github.com/serg350/yamdb-final/pkg/pointer"
)

// Service implements catalog title use cases. Write access is gated at the
// route level ([sec.AdminOrReadOnly]).
type Service struct {
	repository  Repository
	ratingCache RatingCache
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, ratingCache RatingCache) *Service {
	return &Service{
		repository:  repository,
		ratingCache: ratingCache,
	}
}

// CreateInput holds the data for a new title.
type CreateInput struct {
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

/*
Create persists a new title with its category and genre bindings.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Title: Created entity, fully hydrated
  - error: Validation failures on unknown slugs, or persistence failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	title := &Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}

	if err := service.repository.Create(context, title, input.CategorySlug, input.GenreSlugs); err != nil {
		return nil, err
	}

	// Re-read to hydrate the category and genre objects for the response.
	return service.Get(context, title.ID)
}

/*
List returns a page of titles matching the filter.

Parameters:
  - context: context.Context
  - params: pagination.Params
  - filter: Filter

Returns:
  - []*Title: Hydrated entities with computed ratings
  - int: Total matching rows
  - error: Storage failures
*/
func (service *Service) List(context context.Context, params pagination.Params, filter Filter) ([]*Title, int, error) {
	return service.repository.List(context, params, filter)
}

/*
Get returns a single title with its rating resolved through the cache.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *Title: Hydrated entity
  - error: NotFound or storage failures
*/
func (service *Service) Get(context context.Context, id int) (*Title, error) {
	title, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if rating, hit := service.ratingCache.Get(context, id); hit {
		title.Rating = rating
		return title, nil
	}

	rating, err := service.repository.Rating(context, id)
	if err != nil {
		return nil, err
	}

	title.Rating = rating
	service.ratingCache.Set(context, id, rating)

	return title, nil
}

// UpdateInput holds the partial-update payload for a title. Nil fields are
// left untouched.
type UpdateInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

/*
Update applies a partial update to a title.

Parameters:
  - context: context.Context
  - id: int
  - input: UpdateInput

Returns:
  - *Title: Updated entity, fully hydrated
  - error: NotFound, validation failures, or persistence failures
*/
func (service *Service) Update(context context.Context, id int, input UpdateInput) (*Title, error) {
	title, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	title.Name = pointer.Fallback(input.Name, title.Name)
	title.Year = pointer.Fallback(input.Year, title.Year)
	title.Description = pointer.Fallback(input.Description, title.Description)

	if err := service.repository.Update(context, title, input.CategorySlug, input.GenreSlugs); err != nil {
		return nil, err
	}

	return service.Get(context, id)
}

/*
Delete removes a title together with its reviews and comments.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: NotFound when no such title exists
*/
func (service *Service) Delete(context context.Context, id int) error {
	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	// The cached rating refers to a title that no longer exists.
	_ = service.ratingCache.Invalidate(context, id)

	return nil
}
