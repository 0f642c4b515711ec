// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

// Package comment implements threaded commentary on reviews. Comments have
// no score and do not affect title ratings.
package comment

import "time"

// Comment represents a member's remark on a review.
type Comment struct {
	ID        int       `json:"id"`
	ReviewID  int       `json:"-"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"` // Username, resolved via join.
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}

// FieldText names the only validated payload field.
const FieldText = "text"
