// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package category

import (
	"context"

	"github.com/serg350/yamdb-final/pkg/pagination"
)

// Repository defines the data access contract for categories.
type Repository interface {
	// List returns a page of categories ordered by name, with the total
	// count. An optional search term filters by name substring.
	List(context context.Context, params pagination.Params, search string) ([]*Category, int, error)

	// FindBySlug returns the category with the given slug.
	FindBySlug(context context.Context, slug string) (*Category, error)

	// Create persists a new category. Slug collisions are a conflict.
	Create(context context.Context, category *Category) error

	// DeleteBySlug removes the category; titles keep existing with their
	// category detached (enforced by the DDL).
	DeleteBySlug(context context.Context, slug string) error
}
