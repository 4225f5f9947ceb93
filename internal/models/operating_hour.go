package models

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultOpenTime and DefaultCloseTime are seeded for every weekday when a
// sports center is created.
var (
	DefaultOpenTime  = datatypes.NewTime(8, 0, 0, 0)
	DefaultCloseTime = datatypes.NewTime(18, 0, 0, 0)
)

// OperatingHour is the open/close window of one weekday (0 = Sunday).
type OperatingHour struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	SportsCenterID uint           `gorm:"not null;uniqueIndex:idx_operating_hours_center_day,priority:1" json:"sports_center_id"`
	DayOfWeek      int            `gorm:"type:smallint;not null;uniqueIndex:idx_operating_hours_center_day,priority:2" json:"day_of_week"`
	OpenTime       datatypes.Time `gorm:"not null" json:"open_time"`
	CloseTime      datatypes.Time `gorm:"not null" json:"close_time"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// DefaultWeek builds the seven default rows for a new sports center.
func DefaultWeek(sportsCenterID uint) []OperatingHour {
	week := make([]OperatingHour, 0, 7)
	for day := 0; day <= 6; day++ {
		week = append(week, OperatingHour{
			SportsCenterID: sportsCenterID,
			DayOfWeek:      day,
			OpenTime:       DefaultOpenTime,
			CloseTime:      DefaultCloseTime,
		})
	}
	return week
}

// Covers reports whether [start, end] fits inside the window.
func (h OperatingHour) Covers(start, end datatypes.Time) bool {
	return start >= h.OpenTime && end <= h.CloseTime
}
