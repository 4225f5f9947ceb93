package services

import (
	"context"
	"strings"

	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/models"
	"github.com/anselmoparente/VemProFut/internal/policy"
	"github.com/anselmoparente/VemProFut/internal/validation"
	"gorm.io/gorm"
)

type FieldService struct {
	db   *gorm.DB
	gate *policy.Gate
}

func NewFieldService(db *gorm.DB, gate *policy.Gate) *FieldService {
	return &FieldService{db: db, gate: gate}
}

func (s *FieldService) List(ctx context.Context, userID, sportsCenterID uint, page int) (*dto.Page[models.Field], error) {
	sc, err := s.gate.SportsCenter(ctx, userID, sportsCenterID)
	if err != nil {
		return nil, err
	}
	return paginate[models.Field](ctx, s.db, page, func(q *gorm.DB) *gorm.DB {
		return q.Where("fields.sports_center_id = ?", sc.ID)
	}, "fields.id DESC")
}

// Create adds a field to the center named by the route.
func (s *FieldService) Create(ctx context.Context, userID, sportsCenterID uint, req *dto.CreateFieldRequest) (*models.Field, error) {
	sc, err := s.gate.SportsCenter(ctx, userID, sportsCenterID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	f := models.Field{
		SportsCenterID: sc.ID,
		Name:           strings.TrimSpace(req.Name),
		PricePerHour:   req.PricePerHour,
	}
	if err := s.db.WithContext(ctx).Create(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FieldService) Update(ctx context.Context, userID, id uint, req *dto.UpdateFieldRequest) (*models.Field, error) {
	f, err := s.gate.Field(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := validation.Patch(req); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	setString(changes, "name", req.Name.Ptr())
	if req.PricePerHour.Set {
		if v := req.PricePerHour.Ptr(); v != nil {
			changes["price_per_hour"] = *v
		} else {
			changes["price_per_hour"] = nil
		}
	}
	if len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(f).Updates(changes).Error; err != nil {
			return nil, err
		}
	}

	var fresh models.Field
	if err := s.db.WithContext(ctx).First(&fresh, f.ID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

func (s *FieldService) Delete(ctx context.Context, userID, id uint) error {
	f, err := s.gate.Field(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(f).Error
}

// Authorize checks userID owns the field's sports center.
func (s *FieldService) Authorize(ctx context.Context, userID, id uint) error {
	_, err := s.gate.Field(ctx, userID, id)
	return err
}

// AuthorizeSportsCenter checks userID may add fields to the center.
func (s *FieldService) AuthorizeSportsCenter(ctx context.Context, userID, sportsCenterID uint) error {
	_, err := s.gate.SportsCenter(ctx, userID, sportsCenterID)
	return err
}
