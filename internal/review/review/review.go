// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

/*
Package review implements scored reviews of catalog titles.

Each member may review a given title at most once; the score feeds the
title's derived rating. Authorship is always assigned by the server from the
authenticated identity, never taken from the payload.
*/
package review

import "time"

// Review represents a member's scored opinion about a title.
type Review struct {
	ID        int       `json:"id"`
	TitleID   int       `json:"-"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"` // Username, resolved via join.
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}

// Field names for validation in the review domain.
const (
	FieldText  = "text"
	FieldScore = "score"
)
