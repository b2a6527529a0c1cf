package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/apperr"
	"reviewhub/internal/permission"
)

// CommentService manages comments under a title's review. Comments never
// touch the title rating.
type CommentService interface {
	Create(ctx context.Context, actor *permission.Actor, titleID, reviewID int64, text string) (*models.Comment, error)
	Update(ctx context.Context, actor *permission.Actor, titleID, reviewID, commentID int64, text string) (*models.Comment, error)
	Delete(ctx context.Context, actor *permission.Actor, titleID, reviewID, commentID int64) error
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	List(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// Create fails with NotFound unless the review exists under the given title.
func (s *commentService) Create(ctx context.Context, actor *permission.Actor, titleID, reviewID int64, text string) (*models.Comment, error) {
	if err := authorize(actor, permission.ActionCreate, permission.ResourceComment, ""); err != nil {
		return nil, err
	}

	review, err := s.reviewOrNotFound(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     text,
		AuthorID: actor.ID,
		ReviewID: review.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByReviewAndID(ctx, review.ID, comment.ID)
}

func (s *commentService) Update(ctx context.Context, actor *permission.Actor, titleID, reviewID, commentID int64, text string) (*models.Comment, error) {
	comment, err := s.commentOrNotFound(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := authorize(actor, permission.ActionUpdate, permission.ResourceComment, comment.AuthorID); err != nil {
		return nil, err
	}

	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByReviewAndID(ctx, reviewID, commentID)
}

func (s *commentService) Delete(ctx context.Context, actor *permission.Actor, titleID, reviewID, commentID int64) error {
	comment, err := s.commentOrNotFound(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := authorize(actor, permission.ActionDelete, permission.ResourceComment, comment.AuthorID); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("comment %d: %w", commentID, apperr.ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	return s.commentOrNotFound(ctx, titleID, reviewID, commentID)
}

func (s *commentService) List(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	review, err := s.reviewOrNotFound(ctx, titleID, reviewID)
	if err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(ctx, review.ID, page, pageSize)
}

func (s *commentService) reviewOrNotFound(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByTitleAndID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review %d: %w", reviewID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return review, nil
}

func (s *commentService) commentOrNotFound(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if _, err := s.reviewOrNotFound(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByReviewAndID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment %d: %w", commentID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return comment, nil
}
