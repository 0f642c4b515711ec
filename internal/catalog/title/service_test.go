// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package title_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serg350/yamdb-final/internal/catalog/title"
	"github.com/serg350/yamdb-final/internal/platform/apperr"
	"github.com/serg350/yamdb-final/pkg/pagination"
	"github.com/serg350/yamdb-final/pkg/pointer"
)

// # Test Doubles

type fakeRepository struct {
	titles      map[int]*title.Title
	ratings     map[int]*int
	ratingCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		titles:  map[int]*title.Title{},
		ratings: map[int]*int{},
	}
}

func (r *fakeRepository) List(_ context.Context, _ pagination.Params, _ title.Filter) ([]*title.Title, int, error) {
	result := make([]*title.Title, 0, len(r.titles))
	for _, item := range r.titles {
		copied := *item
		copied.Rating = r.ratings[item.ID]
		result = append(result, &copied)
	}
	return result, len(result), nil
}

func (r *fakeRepository) FindByID(_ context.Context, id int) (*title.Title, error) {
	item, ok := r.titles[id]
	if !ok {
		return nil, apperr.NotFound("Title")
	}
	copied := *item
	return &copied, nil
}

func (r *fakeRepository) Rating(_ context.Context, id int) (*int, error) {
	r.ratingCalls++
	return r.ratings[id], nil
}

func (r *fakeRepository) Create(_ context.Context, item *title.Title, _ string, _ []string) error {
	item.ID = len(r.titles) + 1
	copied := *item
	r.titles[item.ID] = &copied
	return nil
}

func (r *fakeRepository) Update(_ context.Context, item *title.Title, _ *string, _ *[]string) error {
	if _, ok := r.titles[item.ID]; !ok {
		return apperr.NotFound("Title")
	}
	copied := *item
	r.titles[item.ID] = &copied
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id int) error {
	if _, ok := r.titles[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(r.titles, id)
	return nil
}

type fakeRatingCache struct {
	entries     map[int]*int
	invalidated []int
}

func newFakeRatingCache() *fakeRatingCache {
	return &fakeRatingCache{entries: map[int]*int{}}
}

func (c *fakeRatingCache) Get(_ context.Context, titleID int) (*int, bool) {
	rating, ok := c.entries[titleID]
	return rating, ok
}

func (c *fakeRatingCache) Set(_ context.Context, titleID int, rating *int) {
	c.entries[titleID] = rating
}

func (c *fakeRatingCache) Invalidate(_ context.Context, titleID int) error {
	delete(c.entries, titleID)
	c.invalidated = append(c.invalidated, titleID)
	return nil
}

// # Rating Cache-Aside

/*
TestGet_RatingCacheAside verifies the single-title read path: a miss computes
and stores the rating, a hit skips recomputation.
*/
func TestGet_RatingCacheAside(t *testing.T) {
	repo := newFakeRepository()
	cache := newFakeRatingCache()
	service := title.NewService(repo, cache)

	repo.titles[1] = &title.Title{ID: 1, Name: "Dune", Year: 1965}
	repo.ratings[1] = pointer.To(8)

	// 1. Cold read computes the rating and populates the cache.
	got, err := service.Get(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 8, *got.Rating)
	assert.Equal(t, 1, repo.ratingCalls)

	// 2. Warm read serves from the cache.
	got, err = service.Get(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 8, *got.Rating)
	assert.Equal(t, 1, repo.ratingCalls)
}

/*
TestGet_NoReviewsCached verifies that "no reviews yet" (nil rating) is cached
as an answer, not treated as a miss.
*/
func TestGet_NoReviewsCached(t *testing.T) {
	repo := newFakeRepository()
	cache := newFakeRatingCache()
	service := title.NewService(repo, cache)

	repo.titles[1] = &title.Title{ID: 1, Name: "Dune", Year: 1965}

	got, err := service.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, got.Rating)

	_, err = service.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.ratingCalls)
}

/*
TestDelete_InvalidatesRating verifies the cached rating is dropped with the
title.
*/
func TestDelete_InvalidatesRating(t *testing.T) {
	repo := newFakeRepository()
	cache := newFakeRatingCache()
	service := title.NewService(repo, cache)

	repo.titles[1] = &title.Title{ID: 1, Name: "Dune", Year: 1965}
	cache.entries[1] = pointer.To(8)

	require.NoError(t, service.Delete(context.Background(), 1))
	assert.Equal(t, []int{1}, cache.invalidated)

	// Deleting a missing title is still 404.
	err := service.Delete(context.Background(), 1)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestUpdate_PartialFields verifies nil input fields leave the stored values
untouched.
*/
func TestUpdate_PartialFields(t *testing.T) {
	repo := newFakeRepository()
	service := title.NewService(repo, newFakeRatingCache())

	repo.titles[1] = &title.Title{ID: 1, Name: "Dune", Year: 1965, Description: "desert planet"}

	updated, err := service.Update(context.Background(), 1, title.UpdateInput{
		Description: pointer.To("spice opera"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Dune", updated.Name)
	assert.Equal(t, 1965, updated.Year)
	assert.Equal(t, "spice opera", updated.Description)
}
