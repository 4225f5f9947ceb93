package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Game struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	GameDate    Date           `gorm:"not null;index" json:"game_date"`
	StartTime   datatypes.Time `gorm:"not null" json:"start_time"`
	EndTime     datatypes.Time `gorm:"not null" json:"end_time"`
	MaxPlayers  int            `gorm:"not null" json:"max_players"`
	StatusID    uint           `gorm:"not null;index" json:"status_id"`
	FieldID     uint           `gorm:"not null;index" json:"field_id"`
	OrganizerID uint           `gorm:"not null;index" json:"organizer_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Status    *GameStatus `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Field     *Field      `json:"field,omitempty"`
	Organizer *User       `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
}

// GamePlayer is the participation pivot between games and users.
type GamePlayer struct {
	GameID   uint      `gorm:"primaryKey" json:"game_id"`
	PlayerID uint      `gorm:"primaryKey" json:"player_id"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`

	Game   *Game `json:"-"`
	Player *User `gorm:"foreignKey:PlayerID" json:"-"`
}
