// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

/*
Package category implements the category taxonomy of the catalog.

A category is the coarse kind of a work (book, film, music). Each title
belongs to at most one category; removing a category detaches its titles
rather than deleting them.
*/
package category

import "time"

// Category represents a coarse classification of titles.
type Category struct {
	ID        int       `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Field names for validation in the category domain.
const (
	FieldName = "name"
	FieldSlug = "slug"
)
