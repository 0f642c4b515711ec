// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package category

import (
	"context"

	"github.com/serg350/yamdb-final/pkg/pagination"
	"github.com/serg350/yamdb-final/pkg/slug"
)

// Service implements category use cases. Write access is gated at the route
// level ([sec.AdminOrReadOnly]).
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its storage dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// CreateInput holds the data for a new category. An empty slug is derived
// from the name.
type CreateInput struct {
	Name string
	Slug string
}

// Create persists a new category, deriving the slug from the name when absent.
func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {
	categorySlug := input.Slug
	if categorySlug == "" {
		categorySlug = slug.From(input.Name)
	}

	category := &Category{
		Name: input.Name,
		Slug: categorySlug,
	}

	if err := service.repository.Create(context, category); err != nil {
		return nil, err
	}

	return category, nil
}

// List returns a page of categories with an optional name search.
func (service *Service) List(context context.Context, params pagination.Params, search string) ([]*Category, int, error) {
	return service.repository.List(context, params, search)
}

// Delete removes the category with the given slug.
func (service *Service) Delete(context context.Context, slug string) error {
	return service.repository.DeleteBySlug(context, slug)
}
