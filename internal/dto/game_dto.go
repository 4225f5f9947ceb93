package dto

import "github.com/anselmoparente/VemProFut/internal/models"

// GameListQuery is the raw query string of the game listings.
type GameListQuery struct {
	SportsCenterID string `query:"sports_center_id" json:"sports_center_id" validate:"omitempty,number"`
	StatusID       string `query:"status_id" json:"status_id" validate:"omitempty,number"`
	DateFrom       string `query:"date_from" json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo         string `query:"date_to" json:"date_to" validate:"omitempty,datetime=2006-01-02"`
	Page           int    `query:"page" json:"page"`
}

type UpdateGameStatusRequest struct {
	StatusID *uint `json:"status_id" validate:"required"`
}

type CreateGameRequest struct {
	FieldID    *uint  `json:"field_id" validate:"required"`
	GameDate   string `json:"game_date" validate:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time" validate:"required,hhmm"`
	EndTime    string `json:"end_time" validate:"required,hhmm"`
	MaxPlayers *int   `json:"max_players" validate:"required,gte=2,lte=50"`
}

type DashboardResponse struct {
	SportsCentersCount int64         `json:"sports_centers_count"`
	FieldsCount        int64         `json:"fields_count"`
	UpcomingGamesCount int64         `json:"upcoming_games_count"`
	UpcomingGames      []models.Game `json:"upcoming_games"`
}
