package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"reviewhub/internal/api/repository"
	"reviewhub/internal/apperr"
	"reviewhub/internal/cache"
)

// RatingAggregator keeps title.rating equal to the mean review score.
// Every review mutation is followed by a Recompute for the affected title.
type RatingAggregator interface {
	Recompute(ctx context.Context, titleID int64) error
}

type ratingAggregator struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	titleCache cache.TitleCache
	logger     zerolog.Logger
}

func NewRatingAggregator(
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
	titleCache cache.TitleCache,
	logger zerolog.Logger,
) RatingAggregator {
	return &ratingAggregator{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		titleCache: titleCache,
		logger:     logger,
	}
}

// Recompute re-derives the average from the full current review set and
// writes only the rating column. With no reviews left the rating goes back
// to null, never zero. Concurrent recomputes may race; last write wins and
// converges because the value is a pure function of current state.
func (a *ratingAggregator) Recompute(ctx context.Context, titleID int64) error {
	avg, err := a.reviewRepo.AverageScore(ctx, titleID)
	if err != nil {
		return fmt.Errorf("average score for title %d: %w", titleID, err)
	}

	if err := a.titleRepo.UpdateRating(ctx, titleID, avg); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("title %d: %w", titleID, apperr.ErrNotFound)
		}
		return fmt.Errorf("update rating for title %d: %w", titleID, err)
	}

	a.titleCache.Invalidate(ctx, titleID)

	if avg != nil {
		a.logger.Debug().Int64("title_id", titleID).Float64("rating", *avg).Msg("rating recomputed")
	} else {
		a.logger.Debug().Int64("title_id", titleID).Msg("rating cleared, no reviews left")
	}
	return nil
}
