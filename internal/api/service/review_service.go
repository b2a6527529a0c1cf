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

// ReviewService orchestrates the review lifecycle: permission gating,
// the one-review-per-(title, author) invariant, and rating recomputation.
type ReviewService interface {
	Create(ctx context.Context, actor *permission.Actor, titleID int64, text string, score int) (*models.Review, error)
	Update(ctx context.Context, actor *permission.Actor, titleID, reviewID int64, text *string, score *int) (*models.Review, error)
	Delete(ctx context.Context, actor *permission.Actor, titleID, reviewID int64) error
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	List(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	aggregator RatingAggregator
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
	aggregator RatingAggregator,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		aggregator: aggregator,
	}
}

func validScore(score int) bool {
	return score >= 1 && score <= 10
}

// Create persists a new review and recomputes the title rating. A second
// review by the same author for the same title yields Conflict whether it
// is caught by the pre-check or by the unique index under concurrency.
func (s *reviewService) Create(ctx context.Context, actor *permission.Actor, titleID int64, text string, score int) (*models.Review, error) {
	if err := authorize(actor, permission.ActionCreate, permission.ResourceReview, ""); err != nil {
		return nil, err
	}
	if !validScore(score) {
		return nil, fmt.Errorf("score must be between 1 and 10: %w", apperr.ErrValidation)
	}

	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("title %d: %w", titleID, apperr.ErrNotFound)
		}
		return nil, err
	}

	review := &models.Review{
		Text:     text,
		Score:    score,
		AuthorID: actor.ID,
		TitleID:  titleID,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("you have already submitted your review: %w", apperr.ErrConflict)
		}
		return nil, err
	}

	if err := s.aggregator.Recompute(ctx, titleID); err != nil {
		return nil, err
	}

	return s.reviewRepo.GetByTitleAndID(ctx, titleID, review.ID)
}

// Update applies a partial edit. Only the author may edit, whatever their
// role; the rating is recomputed afterwards since the score may change.
func (s *reviewService) Update(ctx context.Context, actor *permission.Actor, titleID, reviewID int64, text *string, score *int) (*models.Review, error) {
	review, err := s.getOrNotFound(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := authorize(actor, permission.ActionUpdate, permission.ResourceReview, review.AuthorID); err != nil {
		return nil, err
	}

	if text != nil {
		review.Text = *text
	}
	if score != nil {
		if !validScore(*score) {
			return nil, fmt.Errorf("score must be between 1 and 10: %w", apperr.ErrValidation)
		}
		review.Score = *score
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	if err := s.aggregator.Recompute(ctx, titleID); err != nil {
		return nil, err
	}

	return s.reviewRepo.GetByTitleAndID(ctx, titleID, reviewID)
}

// Delete is a moderation action; authorship is irrelevant. The rating is
// recomputed so removing the last review clears it back to null.
func (s *reviewService) Delete(ctx context.Context, actor *permission.Actor, titleID, reviewID int64) error {
	review, err := s.getOrNotFound(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := authorize(actor, permission.ActionDelete, permission.ResourceReview, review.AuthorID); err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("review %d: %w", reviewID, apperr.ErrNotFound)
		}
		return err
	}

	return s.aggregator.Recompute(ctx, titleID)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	return s.getOrNotFound(ctx, titleID, reviewID)
}

func (s *reviewService) List(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, fmt.Errorf("title %d: %w", titleID, apperr.ErrNotFound)
		}
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(ctx, titleID, page, pageSize)
}

func (s *reviewService) getOrNotFound(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByTitleAndID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review %d: %w", reviewID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return review, nil
}
