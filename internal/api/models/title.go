package models

import "time"

type Title struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"not null"`
	Year        int     `json:"year" gorm:"not null;check:year >= 1800"`
	Description *string `json:"description,omitempty" gorm:"type:text"`

	// Rating is derived from review scores and written only by the rating
	// aggregator. Null while the title has no reviews.
	Rating *float64 `json:"rating" gorm:"type:decimal(4,2)"`

	CategoryID *int64    `json:"category_id,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`

	// Associations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genres,omitempty" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}
