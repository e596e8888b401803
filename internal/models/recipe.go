package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is always owned by exactly one user. Ingredients and
// instructions are opaque text blobs; the store does not interpret them.
type Recipe struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Ingredients  string     `gorm:"type:text;not null" json:"ingredients"`
	Instructions string     `gorm:"type:text;not null" json:"instructions"`
	ImageURL     string     `gorm:"size:255" json:"imageUrl"`
	CategoryID   *uuid.UUID `gorm:"type:varchar(36)" json:"categoryId"`
	UserID       uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"userId"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
