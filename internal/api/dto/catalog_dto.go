package dto

import (
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

// CreateCategoryDTO covers categories and genres; both are (name, slug)
// pairs looked up by slug.
type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"required,max=100"`
}

// UpdateCategoryDTO renames a category or genre; the slug is the lookup
// key and stays fixed.
type UpdateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CreateTitleDTO for creating or updating a title. Category and genres are
// referenced by slug. There is no rating field: the rating is derived.
type CreateTitleDTO struct {
	Name         string   `json:"name" binding:"required,max=100"`
	Year         int      `json:"year" binding:"required,min=1800"`
	Description  *string  `json:"description,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Genre        []string `json:"genre,omitempty"`
}

// UpdateTitleDTO allows partial edits.
type UpdateTitleDTO struct {
	Name        string   `json:"name,omitempty" binding:"omitempty,max=100"`
	Year        int      `json:"year,omitempty" binding:"omitempty,min=1800"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Genre       []string `json:"genre,omitempty"`
}

// TitleResponse is the read shape with nested category and genres.
type TitleResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	Description *string          `json:"description,omitempty"`
	Rating      *float64         `json:"rating"`
	Category    *models.Category `json:"category"`
	Genre       []models.Genre   `json:"genre"`
}

// FromModelToTitleResponse converts a Title model to its response DTO.
func FromModelToTitleResponse(title *models.Title) *TitleResponse {
	genres := title.Genres
	if genres == nil {
		genres = []models.Genre{}
	}
	return &TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Description: title.Description,
		Rating:      title.Rating,
		Category:    title.Category,
		Genre:       genres,
	}
}

// TitleListQuery binds the list filter query parameters.
type TitleListQuery struct {
	Category string `form:"category"`
	Genre    string `form:"genre"`
	Name     string `form:"name"`
	Year     int    `form:"year"`
}

// Filter converts the query to a repository filter.
func (q TitleListQuery) Filter() repository.TitleFilter {
	return repository.TitleFilter{
		CategorySlug: q.Category,
		GenreSlug:    q.Genre,
		Name:         q.Name,
		Year:         q.Year,
	}
}
