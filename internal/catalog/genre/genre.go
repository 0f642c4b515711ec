// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

/*
Package genre implements the genre taxonomy of the catalog.

Genres are fine-grained labels (drama, sci-fi) attached to titles in a
many-to-many relationship.
*/
package genre

import "time"

// Genre represents a fine-grained classification label for titles.
type Genre struct {
	ID        int       `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Field names for validation in the genre domain.
const (
	FieldName = "name"
	FieldSlug = "slug"
)
