// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

/*
Package title implements the works catalog.

A title is a reviewable work (a book, film, or record). It carries one
category, any number of genres, and a rating derived from the scores of its
reviews. The rating is never stored; it is always computed from review data
and cached for a short window.
*/
package title

import (
	"time"

	"github.com/serg350/yamdb-final/internal/catalog/category"
	"github.com/serg350/yamdb-final/internal/catalog/genre"
)

// Title represents a reviewable work in the catalog.
type Title struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Year        int                `json:"year"`
	Description string             `json:"description"`
	Category    *category.Category `json:"category"`
	Genres      []genre.Genre      `json:"genre"`
	CreatedAt   time.Time          `json:"-"`

	// Rating is the rounded average review score; nil when the title has
	// no reviews yet.
	Rating *int `json:"rating"`
}

// Filter narrows a catalog listing. Zero values mean "no constraint".
// A title matches GenreSlugs when it carries any of the listed genres.
type Filter struct {
	CategorySlug string
	GenreSlugs   []string
	Name         string
	Year         int
}

// Field names for validation in the title domain.
const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldGenre       = "genre"
)
