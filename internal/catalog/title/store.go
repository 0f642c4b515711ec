// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package title

import (
	"context"

	"github.com/serg350/yamdb-final/pkg/pagination"
)

// Repository defines the data access contract for titles.
type Repository interface {

	/*
		List returns a page of titles matching the filter, newest first,
		with category, genres, and rating hydrated.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params
		  - filter: Filter

		Returns:
		  - []*Title: Hydrated entities
		  - int: Total matching rows
		  - error: Database retrieval failures
	*/
	List(context context.Context, params pagination.Params, filter Filter) ([]*Title, int, error)

	/*
		FindByID returns the title with category and genres hydrated.
		The rating is NOT computed here; callers obtain it separately
		so it can be served from cache.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *Title: Hydrated entity
		  - error: NotFound or retrieval failures
	*/
	FindByID(context context.Context, id int) (*Title, error)

	/*
		Rating computes the rounded average review score for a title.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *int: Rounded average, nil when the title has no reviews
		  - error: Database retrieval failures
	*/
	Rating(context context.Context, id int) (*int, error)

	/*
		Create persists a title with its category and genre links in a
		single transaction.

		Parameters:
		  - context: context.Context
		  - title: *Title
		  - categorySlug: string
		  - genreSlugs: []string

		Returns:
		  - error: Validation failures on unknown slugs, or persistence failures
	*/
	Create(context context.Context, title *Title, categorySlug string, genreSlugs []string) error

	/*
		Update persists changes to a title. A non-nil categorySlug re-binds
		the category; a non-nil genreSlugs replaces all genre links. Both
		happen in the same transaction as the row update.

		Parameters:
		  - context: context.Context
		  - title: *Title
		  - categorySlug: *string
		  - genreSlugs: *[]string

		Returns:
		  - error: Validation failures on unknown slugs, or persistence failures
	*/
	Update(context context.Context, title *Title, categorySlug *string, genreSlugs *[]string) error

	/*
		Delete removes the title. Reviews and their comments go with it
		(enforced by the DDL).

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - error: NotFound when no such title exists
	*/
	Delete(context context.Context, id int) error
}

// RatingCache is a short-lived cache for computed title ratings.
type RatingCache interface {
	// Get returns the cached rating and whether the cache held an entry.
	// A hit with a nil rating means "computed, no reviews".
	Get(context context.Context, titleID int) (*int, bool)

	// Set stores a computed rating.
	Set(context context.Context, titleID int, rating *int)

	// Invalidate drops the cached rating after a review mutation.
	Invalidate(context context.Context, titleID int) error
}
