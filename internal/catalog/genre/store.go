// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package genre

import (
	"context"

	"github.com/serg350/yamdb-final/pkg/pagination"
)

// Repository defines the data access contract for genres.
type Repository interface {
	// List returns a page of genres ordered by name, with the total count.
	// An optional search term filters by name substring.
	List(context context.Context, params pagination.Params, search string) ([]*Genre, int, error)

	// FindBySlug returns the genre with the given slug.
	FindBySlug(context context.Context, slug string) (*Genre, error)

	// Create persists a new genre. Slug collisions are a conflict.
	Create(context context.Context, genre *Genre) error

	// DeleteBySlug removes the genre and its title links.
	DeleteBySlug(context context.Context, slug string) error
}
