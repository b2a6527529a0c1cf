package dto

import (
	"time"

	"reviewhub/internal/api/models"
)

// CreateCommentDTO for commenting on a review
type CreateCommentDTO struct {
	Text string `json:"text" binding:"required"`
}

// CommentResponse mirrors the read shape: the author appears as a username.
type CommentResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse.
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	author := ""
	if comment.Author.Username != nil {
		author = *comment.Author.Username
	}
	return &CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		Author:  author,
		PubDate: comment.PubDate,
	}
}
