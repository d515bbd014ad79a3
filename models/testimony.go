package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// Testimony represents a client testimonial
type Testimony struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"not null"`
	Role      string    `json:"role"`
	Company   string    `json:"company"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Avatar    Asset     `json:"avatar" gorm:"embedded;embeddedPrefix:avatar_"`
	Rating    int       `json:"rating" gorm:"not null;default:5"`
	Featured  bool      `json:"featured" gorm:"not null;default:false"`
	Order     int       `json:"order" gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for Testimony model
func (Testimony) TableName() string {
	return "testimonies"
}

// BeforeCreate assigns an ID and the default rating
func (t *Testimony) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Rating == 0 {
		t.Rating = DefaultRating
	}
	return nil
}
