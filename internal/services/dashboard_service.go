package services

import (
	"context"
	"time"

	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/models"
	"github.com/anselmoparente/VemProFut/internal/tenant"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

const (
	upcomingWindowDays = 7
	upcomingPreview    = 5
)

type DashboardService struct {
	db    *gorm.DB
	clock clockwork.Clock
	loc   *time.Location
}

func NewDashboardService(db *gorm.DB, clock clockwork.Clock, loc *time.Location) *DashboardService {
	return &DashboardService{db: db, clock: clock, loc: loc}
}

// Summary counts the owner's centers, fields and games in [today, today+7].
func (s *DashboardService) Summary(ctx context.Context, ownerID uint) (*dto.DashboardResponse, error) {
	db := s.db.WithContext(ctx)
	resp := &dto.DashboardResponse{UpcomingGames: []models.Game{}}

	if err := db.Model(&models.SportsCenter{}).Scopes(tenant.ForOwner(ownerID)).Count(&resp.SportsCentersCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Field{}).Where("fields.id IN (?)", tenant.OwnedFieldIDs(db, ownerID, 0)).Count(&resp.FieldsCount).Error; err != nil {
		return nil, err
	}

	today := models.NewDate(s.clock.Now().In(s.loc))
	upcoming := func() *gorm.DB {
		return db.Model(&models.Game{}).
			Scopes(tenant.ForOwnedGames(ownerID, 0)).
			Where("games.game_date BETWEEN ? AND ?", today, today.AddDays(upcomingWindowDays))
	}

	if err := upcoming().Count(&resp.UpcomingGamesCount).Error; err != nil {
		return nil, err
	}
	err := upcoming().
		Preload("Status").Preload("Field.SportsCenter").
		Order(gameOrder).Limit(upcomingPreview).
		Find(&resp.UpcomingGames).Error
	if err != nil {
		return nil, err
	}
	return resp, nil
}
