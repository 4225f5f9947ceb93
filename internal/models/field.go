package models

import (
	"time"

	"gorm.io/gorm"
)

type Field struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	SportsCenterID uint           `gorm:"not null;index" json:"sports_center_id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	PricePerHour   *float64       `gorm:"type:decimal(10,2)" json:"price_per_hour"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	SportsCenter *SportsCenter `json:"sports_center,omitempty"`
}
