package services

import (
	"context"
	"strings"

	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/models"
	"github.com/anselmoparente/VemProFut/internal/policy"
	"github.com/anselmoparente/VemProFut/internal/tenant"
	"github.com/anselmoparente/VemProFut/internal/validation"
	"gorm.io/gorm"
)

type SportsCenterService struct {
	db   *gorm.DB
	gate *policy.Gate
}

func NewSportsCenterService(db *gorm.DB, gate *policy.Gate) *SportsCenterService {
	return &SportsCenterService{db: db, gate: gate}
}

func (s *SportsCenterService) List(ctx context.Context, ownerID uint, page int) (*dto.Page[models.SportsCenter], error) {
	return paginate[models.SportsCenter](ctx, s.db, page, func(q *gorm.DB) *gorm.DB {
		return q.Scopes(tenant.ForOwner(ownerID))
	}, "sports_centers.id DESC")
}

// Create stores the center for ownerID together with its default week of
// operating hours. Either every row commits or none does.
func (s *SportsCenterService) Create(ctx context.Context, ownerID uint, req *dto.CreateSportsCenterRequest) (*models.SportsCenter, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	sc := models.SportsCenter{
		OwnerID:      ownerID,
		Name:         strings.TrimSpace(req.Name),
		Phone:        trimmed(req.Phone),
		Street:       strings.TrimSpace(req.Street),
		Number:       strings.TrimSpace(req.Number),
		Complement:   trimmed(req.Complement),
		Neighborhood: strings.TrimSpace(req.Neighborhood),
		City:         strings.TrimSpace(req.City),
		State:        strings.ToUpper(req.State),
		ZipCode:      strings.TrimSpace(req.ZipCode),
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sc).Error; err != nil {
			return err
		}
		week := models.DefaultWeek(sc.ID)
		return tx.Create(&week).Error
	})
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *SportsCenterService) Get(ctx context.Context, userID, id uint) (*models.SportsCenter, error) {
	return s.gate.SportsCenter(ctx, userID, id)
}

// Update applies only the keys present in req. owner_id is never writable.
func (s *SportsCenterService) Update(ctx context.Context, userID, id uint, req *dto.UpdateSportsCenterRequest) (*models.SportsCenter, error) {
	sc, err := s.gate.SportsCenter(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := validation.Patch(req); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	setString(changes, "name", req.Name.Ptr())
	setString(changes, "street", req.Street.Ptr())
	setString(changes, "number", req.Number.Ptr())
	setString(changes, "neighborhood", req.Neighborhood.Ptr())
	setString(changes, "city", req.City.Ptr())
	setString(changes, "zip_code", req.ZipCode.Ptr())
	setNullable(changes, "phone", req.Phone)
	setNullable(changes, "complement", req.Complement)
	if v := req.State.Ptr(); v != nil {
		changes["state"] = strings.ToUpper(*v)
	}
	if v := req.Latitude.Ptr(); v != nil {
		changes["latitude"] = *v
	}
	if v := req.Longitude.Ptr(); v != nil {
		changes["longitude"] = *v
	}

	if len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(sc).Updates(changes).Error; err != nil {
			return nil, err
		}
	}

	var fresh models.SportsCenter
	if err := s.db.WithContext(ctx).First(&fresh, sc.ID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

func (s *SportsCenterService) Delete(ctx context.Context, userID, id uint) error {
	sc, err := s.gate.SportsCenter(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(sc).Error
}

// trimmed returns nil for nil or blank input.
func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func setString(changes map[string]interface{}, column string, v *string) {
	if v != nil {
		changes[column] = strings.TrimSpace(*v)
	}
}

// setNullable writes NULL for an explicit null or a blank value.
func setNullable(changes map[string]interface{}, column string, v dto.Optional[string]) {
	if !v.Set {
		return
	}
	if t := trimmed(v.Ptr()); t != nil {
		changes[column] = *t
		return
	}
	changes[column] = nil
}

// Authorize runs the ownership gate alone.
func (s *SportsCenterService) Authorize(ctx context.Context, userID, id uint) error {
	_, err := s.gate.SportsCenter(ctx, userID, id)
	return err
}
