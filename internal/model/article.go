package model

import "time"

type Article struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:100;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CoverImage *string   `gorm:"size:256" json:"cover_image,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	Author     User      `gorm:"constraint:OnDelete:CASCADE" json:"author,omitempty"`
}
