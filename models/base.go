package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

// Base replaces gorm.Model: string UUID keys and hard deletes.
type Base struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}
