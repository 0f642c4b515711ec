// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package genre

import (
	"context"

	"github.com/serg350/yamdb-final/pkg/pagination"
	"github.com/serg350/yamdb-final/pkg/slug"
)

// Service implements genre use cases. Write access is gated at the route
// level ([sec.AdminOrReadOnly]).
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its storage dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// CreateInput holds the data for a new genre. An empty slug is derived
// from the name.
type CreateInput struct {
	Name string
	Slug string
}

// Create persists a new genre, deriving the slug from the name when absent.
func (service *Service) Create(context context.Context, input CreateInput) (*Genre, error) {
	genreSlug := input.Slug
	if genreSlug == "" {
		genreSlug = slug.From(input.Name)
	}

	genre := &Genre{
		Name: input.Name,
		Slug: genreSlug,
	}

	if err := service.repository.Create(context, genre); err != nil {
		return nil, err
	}

	return genre, nil
}

// List returns a page of genres with an optional name search.
func (service *Service) List(context context.Context, params pagination.Params, search string) ([]*Genre, int, error) {
	return service.repository.List(context, params, search)
}

// Delete removes the genre with the given slug.
func (service *Service) Delete(context context.Context, slug string) error {
	return service.repository.DeleteBySlug(context, slug)
}
