package models

import "time"

type Review struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Text  string `json:"text" gorm:"not null;type:text"`
	Score int    `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`

	// One review per (title, author); the composite unique index is the
	// authoritative backstop for concurrent creates.
	AuthorID string `json:"author_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_title_author"`
	TitleID  int64  `json:"title_id" gorm:"not null;uniqueIndex:idx_reviews_title_author"`

	PubDate time.Time `json:"pub_date" gorm:"autoCreateTime"`

	// Associations
	Author User  `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Title  Title `json:"title,omitempty" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
