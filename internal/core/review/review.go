// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review manages user reviews of titles and the comments left on them.

Reviews live under a title and comments under a review; a child addressed
through the wrong parent is reported as missing. Each user may review a title
once. Anyone may read, any authenticated user may write, and only the author, a
moderator or an administrator may edit or delete an existing entry.
*/
package review

import "time"

// Review is a scored opinion of a title.
type Review struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	Author   string    `json:"author"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
	AuthorID int64     `json:"-"`
	TitleID  int64     `json:"-"`
}

// Comment is a reply to a review.
type Comment struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	Author   string    `json:"author"`
	PubDate  time.Time `json:"pub_date"`
	AuthorID int64     `json:"-"`
	ReviewID int64     `json:"-"`
}

// ReviewInput is the payload of POST and PATCH on reviews. Nil fields were not supplied.
type ReviewInput struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// CommentInput is the payload of POST and PATCH on comments.
type CommentInput struct {
	Text *string `json:"text"`
}

// Field names and limits.
const (
	FieldText  = "text"
	FieldScore = "score"

	ScoreMin = 1
	ScoreMax = 10
)

const (
	resourceTitle   = "Title"
	resourceReview  = "Review"
	resourceComment = "Comment"

	msgAlreadyReviewed = "You have already reviewed this title"
)
