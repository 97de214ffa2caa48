// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
)

// policy governs reviews and comments alike.
var policy = sec.ReadOnlyOrAuthorModeratorAdmin

// Service implements the business logic for reviews and comments.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a review [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) requireTitle(context context.Context, titleID int64) error {
	exists, err := service.repo.TitleExists(context, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound(resourceTitle)
	}
	return nil
}

// # Reviews

// ListReviews returns a page of the title's reviews in publication order.
func (service *Service) ListReviews(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListReviews(context, titleID, limit, offset)
}

// GetReview returns a review of the title.
func (service *Service) GetReview(context context.Context, titleID, reviewID int64) (*Review, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}
	return service.repo.FindReview(context, titleID, reviewID)
}

/*
CreateReview publishes the actor's review of a title.

Returns:
  - *Review: The stored review
  - error: NotFound for an unknown title, ValidationError for bad input or a
    second review of the same title
*/
func (service *Service) CreateReview(context context.Context, actor *sec.Actor, titleID int64, input ReviewInput) (*Review, error) {
	if err := sec.Check(policy, http.MethodPost, actor); err != nil {
		return nil, err
	}
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Present(FieldText, input.Text != nil).Present(FieldScore, input.Score != nil)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	review := &Review{TitleID: titleID, AuthorID: actor.ID, Author: actor.Username}
	if err := applyReview(review, input); err != nil {
		return nil, err
	}

	exists, err := service.repo.ReviewExists(context, titleID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.ValidationError(msgAlreadyReviewed)
	}

	if err := service.repo.CreateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int64("review_id", review.ID),
		slog.Int64("title_id", titleID),
		slog.Int64("author_id", actor.ID),
	)
	return review, nil
}

// UpdateReview edits text or score of a review the actor may modify.
func (service *Service) UpdateReview(context context.Context, actor *sec.Actor, titleID, reviewID int64, input ReviewInput) (*Review, error) {
	review, err := service.GetReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := sec.CheckObject(policy, http.MethodPatch, actor, review.AuthorID); err != nil {
		return nil, err
	}

	if err := applyReview(review, input); err != nil {
		return nil, err
	}
	if err := service.repo.UpdateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated", slog.Int64("review_id", reviewID), slog.Int64("actor_id", actor.ID))
	return review, nil
}

// DeleteReview removes a review together with its comments.
func (service *Service) DeleteReview(context context.Context, actor *sec.Actor, titleID, reviewID int64) error {
	review, err := service.GetReview(context, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := sec.CheckObject(policy, http.MethodDelete, actor, review.AuthorID); err != nil {
		return err
	}

	if err := service.repo.DeleteReview(context, reviewID); err != nil {
		return err
	}

	service.logger.Info("review_deleted", slog.Int64("review_id", reviewID), slog.Int64("actor_id", actor.ID))
	return nil
}

func applyReview(review *Review, input ReviewInput) error {
	validator := &validate.Validator{}
	if input.Text != nil {
		review.Text = *input.Text
		validator.Required(FieldText, review.Text)
	}
	if input.Score != nil {
		review.Score = *input.Score
		validator.Range(FieldScore, review.Score, ScoreMin, ScoreMax)
	}
	return validator.Err()
}

// # Comments

// ListComments returns a page of the review's comments in publication order.
func (service *Service) ListComments(context context.Context, titleID, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	if _, err := service.GetReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListComments(context, reviewID, limit, offset)
}

// GetComment returns a comment on the review.
func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	if _, err := service.GetReview(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.FindComment(context, reviewID, commentID)
}

// CreateComment publishes the actor's comment on a review.
func (service *Service) CreateComment(context context.Context, actor *sec.Actor, titleID, reviewID int64, input CommentInput) (*Comment, error) {
	if err := sec.Check(policy, http.MethodPost, actor); err != nil {
		return nil, err
	}
	if _, err := service.GetReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	if err := (&validate.Validator{}).Present(FieldText, input.Text != nil).Err(); err != nil {
		return nil, err
	}

	comment := &Comment{ReviewID: reviewID, AuthorID: actor.ID, Author: actor.Username}
	if err := applyComment(comment, input); err != nil {
		return nil, err
	}

	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("review_id", reviewID),
		slog.Int64("author_id", actor.ID),
	)
	return comment, nil
}

// UpdateComment edits the text of a comment the actor may modify.
func (service *Service) UpdateComment(context context.Context, actor *sec.Actor, titleID, reviewID, commentID int64, input CommentInput) (*Comment, error) {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := sec.CheckObject(policy, http.MethodPatch, actor, comment.AuthorID); err != nil {
		return nil, err
	}

	if err := applyComment(comment, input); err != nil {
		return nil, err
	}
	if err := service.repo.UpdateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.Int64("comment_id", commentID), slog.Int64("actor_id", actor.ID))
	return comment, nil
}

// DeleteComment removes a comment.
func (service *Service) DeleteComment(context context.Context, actor *sec.Actor, titleID, reviewID, commentID int64) error {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := sec.CheckObject(policy, http.MethodDelete, actor, comment.AuthorID); err != nil {
		return err
	}

	if err := service.repo.DeleteComment(context, commentID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted", slog.Int64("comment_id", commentID), slog.Int64("actor_id", actor.ID))
	return nil
}

func applyComment(comment *Comment, input CommentInput) error {
	if input.Text == nil {
		return nil
	}
	comment.Text = *input.Text
	return (&validate.Validator{}).Required(FieldText, comment.Text).Err()
}
