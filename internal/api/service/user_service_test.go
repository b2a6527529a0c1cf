package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/api/models"
	"reviewhub/internal/apperr"
)

func TestUserDelete_RecomputesReviewedTitles(t *testing.T) {
	userRepo := new(MockUserRepository)
	reviewRepo := new(MockReviewRepository)
	aggregator := new(MockRatingAggregator)
	svc := NewUserService(userRepo, reviewRepo, aggregator)

	username := "reader"
	userRepo.On("FindByUsername", mock.Anything, "reader").
		Return(&models.User{ID: "user-1", Username: &username}, nil)
	reviewRepo.On("TitleIDsByAuthor", mock.Anything, "user-1").
		Return([]int64{1, 7}, nil)
	userRepo.On("Delete", mock.Anything, "reader").Return(nil)

	// The user's reviews cascade away, so every title they reviewed gets a
	// fresh rating.
	aggregator.On("Recompute", mock.Anything, int64(1)).Return(nil)
	aggregator.On("Recompute", mock.Anything, int64(7)).Return(nil)

	err := svc.Delete(context.Background(), adminActor(), "reader")

	assert.NoError(t, err)
	aggregator.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestUserDelete_NoReviewsNoRecompute(t *testing.T) {
	userRepo := new(MockUserRepository)
	reviewRepo := new(MockReviewRepository)
	aggregator := new(MockRatingAggregator)
	svc := NewUserService(userRepo, reviewRepo, aggregator)

	username := "reader"
	userRepo.On("FindByUsername", mock.Anything, "reader").
		Return(&models.User{ID: "user-1", Username: &username}, nil)
	reviewRepo.On("TitleIDsByAuthor", mock.Anything, "user-1").
		Return([]int64{}, nil)
	userRepo.On("Delete", mock.Anything, "reader").Return(nil)

	err := svc.Delete(context.Background(), adminActor(), "reader")

	assert.NoError(t, err)
	aggregator.AssertNotCalled(t, "Recompute", mock.Anything, mock.Anything)
}

func TestUserDelete_AdminOnly(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, new(MockReviewRepository), new(MockRatingAggregator))

	err := svc.Delete(context.Background(), userActor("user-1"), "reader")

	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUserDelete_UnknownUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, new(MockReviewRepository), new(MockRatingAggregator))

	userRepo.On("FindByUsername", mock.Anything, "ghost").
		Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), adminActor(), "ghost")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
