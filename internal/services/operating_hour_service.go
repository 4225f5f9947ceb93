package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/models"
	"github.com/anselmoparente/VemProFut/internal/policy"
	"github.com/anselmoparente/VemProFut/internal/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const closeBeforeOpenMessage = "O horário de fechamento deve ser maior que o de abertura."

type OperatingHourService struct {
	db   *gorm.DB
	gate *policy.Gate
}

func NewOperatingHourService(db *gorm.DB, gate *policy.Gate) *OperatingHourService {
	return &OperatingHourService{db: db, gate: gate}
}

// List returns the stored week of the center ordered by day.
func (s *OperatingHourService) List(ctx context.Context, userID, sportsCenterID uint) ([]models.OperatingHour, error) {
	sc, err := s.gate.SportsCenter(ctx, userID, sportsCenterID)
	if err != nil {
		return nil, err
	}
	return s.week(s.db.WithContext(ctx), sc.ID)
}

// Upsert writes one row per submitted day. The whole batch is validated
// before anything is written; when a day appears more than once the last
// occurrence wins.
func (s *OperatingHourService) Upsert(ctx context.Context, userID, sportsCenterID uint, req *dto.UpsertOperatingHoursRequest) ([]models.OperatingHour, error) {
	sc, err := s.gate.SportsCenter(ctx, userID, sportsCenterID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	verr := &validation.Errors{}
	byDay := make(map[int]models.OperatingHour, len(req.Items))
	for i, item := range req.Items {
		openAt, closeAt := ParseHHMM(item.OpenTime), ParseHHMM(item.CloseTime)
		if closeAt <= openAt {
			verr.Add("items."+strconv.Itoa(i)+".close_time", closeBeforeOpenMessage)
			continue
		}
		byDay[*item.DayOfWeek] = models.OperatingHour{
			SportsCenterID: sc.ID,
			DayOfWeek:      *item.DayOfWeek,
			OpenTime:       openAt,
			CloseTime:      closeAt,
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	days := make([]int, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Ints(days)

	var week []models.OperatingHour
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, day := range days {
			row := byDay[day]
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "sports_center_id"}, {Name: "day_of_week"}},
				DoUpdates: clause.AssignmentColumns([]string{"open_time", "close_time", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("upsert day %d: %w", day, err)
			}
		}
		var err error
		week, err = s.week(tx, sc.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return week, nil
}

func (s *OperatingHourService) week(db *gorm.DB, sportsCenterID uint) ([]models.OperatingHour, error) {
	week := make([]models.OperatingHour, 0, 7)
	err := db.Where("sports_center_id = ?", sportsCenterID).Order("day_of_week").Find(&week).Error
	return week, err
}

// ParseHHMM converts a validated HH:mm string into a time of day.
func ParseHHMM(s string) datatypes.Time {
	var h, m int
	fmt.Sscanf(s, "%02d:%02d", &h, &m)
	return datatypes.NewTime(h, m, 0, 0)
}

func (s *OperatingHourService) Authorize(ctx context.Context, userID, sportsCenterID uint) error {
	_, err := s.gate.SportsCenter(ctx, userID, sportsCenterID)
	return err
}
