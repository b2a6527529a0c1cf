package dto

import (
	"time"

	"reviewhub/internal/api/models"
)

// CreateReviewDTO for submitting a review
type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

// UpdateReviewDTO for partial edits by the author
type UpdateReviewDTO struct {
	Text  *string `json:"text,omitempty"`
	Score *int    `json:"score,omitempty" binding:"omitempty,min=1,max=10"`
}

// ReviewResponse mirrors the read shape: the author appears as a username.
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse.
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	author := ""
	if review.Author.Username != nil {
		author = *review.Author.Username
	}
	return &ReviewResponse{
		ID:      review.ID,
		Text:    review.Text,
		Author:  author,
		Score:   review.Score,
		PubDate: review.PubDate,
	}
}
