package models

import (
	"time"

	"gorm.io/gorm"
)

type SportsCenter struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	OwnerID      uint           `gorm:"not null;index" json:"owner_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Phone        *string        `gorm:"size:20" json:"phone"`
	Street       string         `gorm:"size:255;not null" json:"street"`
	Number       string         `gorm:"size:20;not null" json:"number"`
	Complement   *string        `gorm:"size:255" json:"complement"`
	Neighborhood string         `gorm:"size:255;not null" json:"neighborhood"`
	City         string         `gorm:"size:255;not null" json:"city"`
	State        string         `gorm:"type:char(2);not null" json:"state"`
	ZipCode      string         `gorm:"size:9;not null" json:"zip_code"`
	Latitude     float64        `gorm:"type:decimal(10,7);not null" json:"latitude"`
	Longitude    float64        `gorm:"type:decimal(10,7);not null" json:"longitude"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Owner          *User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Fields         []Field         `json:"fields,omitempty"`
	OperatingHours []OperatingHour `json:"operating_hours,omitempty"`
}
