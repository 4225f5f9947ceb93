package models

const (
	GameStatusOpen     uint = 1
	GameStatusFull     uint = 2
	GameStatusFinished uint = 3
	GameStatusCanceled uint = 4
)

type GameStatus struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"size:20;not null;uniqueIndex" json:"code"`
	Description string `gorm:"size:255" json:"description"`
}

// DefaultGameStatuses are the rows seeded into the game_statuses table.
var DefaultGameStatuses = []GameStatus{
	{ID: GameStatusOpen, Code: "open", Description: "Aberto para novos jogadores"},
	{ID: GameStatusFull, Code: "full", Description: "Partida com vagas preenchidas"},
	{ID: GameStatusFinished, Code: "finished", Description: "Partida finalizada"},
	{ID: GameStatusCanceled, Code: "canceled", Description: "Partida cancelada"},
}
