// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

// Repository persists reviews and comments. Lookups are scoped to the parent
// so a child is only found through the parent it belongs to.
type Repository interface {
	TitleExists(context context.Context, titleID int64) (bool, error)

	// # Reviews
	ListReviews(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error)
	FindReview(context context.Context, titleID, reviewID int64) (*Review, error)
	ReviewExists(context context.Context, titleID, authorID int64) (bool, error)
	CreateReview(context context.Context, review *Review) error
	UpdateReview(context context.Context, review *Review) error
	DeleteReview(context context.Context, reviewID int64) error

	// # Comments
	ListComments(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error)
	FindComment(context context.Context, reviewID, commentID int64) (*Comment, error)
	CreateComment(context context.Context, comment *Comment) error
	UpdateComment(context context.Context, comment *Comment) error
	DeleteComment(context context.Context, commentID int64) error
}
