// Package policy decides whether a user may act on a sports center or on
// anything that hangs below one (fields, games).
package policy

import (
	"context"
	"errors"

	"github.com/anselmoparente/VemProFut/internal/models"
	"gorm.io/gorm"
)

var (
	ErrForbidden = errors.New("Acesso negado.")
	ErrNotFound  = errors.New("Registro não encontrado.")
)

// Check allows the action only when the chain's owner is the user.
func Check(userID, ownerID uint) error {
	if userID == 0 || userID != ownerID {
		return ErrForbidden
	}
	return nil
}

// Gate resolves ownership chains against the store. Lookups are never cached.
type Gate struct {
	db *gorm.DB
}

func NewGate(db *gorm.DB) *Gate {
	return &Gate{db: db}
}

// SportsCenter loads the center and checks the user owns it.
func (g *Gate) SportsCenter(ctx context.Context, userID, id uint) (*models.SportsCenter, error) {
	var sc models.SportsCenter
	if err := g.db.WithContext(ctx).First(&sc, id).Error; err != nil {
		return nil, notFound(err)
	}
	if err := Check(userID, sc.OwnerID); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Field loads the field and its parent center, then checks the center's owner.
// A missing field or a missing parent center is ErrNotFound.
func (g *Gate) Field(ctx context.Context, userID, id uint) (*models.Field, error) {
	var f models.Field
	if err := g.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, notFound(err)
	}

	var sc models.SportsCenter
	if err := g.db.WithContext(ctx).Select("id", "owner_id").First(&sc, f.SportsCenterID).Error; err != nil {
		return nil, notFound(err)
	}
	if err := Check(userID, sc.OwnerID); err != nil {
		return nil, err
	}
	return &f, nil
}

// Game loads the game and walks field -> sports center. A game whose field or
// center no longer resolves is treated as not owned.
func (g *Gate) Game(ctx context.Context, userID, id uint) (*models.Game, error) {
	var game models.Game
	if err := g.db.WithContext(ctx).First(&game, id).Error; err != nil {
		return nil, notFound(err)
	}

	var f models.Field
	if err := g.db.WithContext(ctx).Select("id", "sports_center_id").First(&f, game.FieldID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	var sc models.SportsCenter
	if err := g.db.WithContext(ctx).Select("id", "owner_id").First(&sc, f.SportsCenterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if err := Check(userID, sc.OwnerID); err != nil {
		return nil, err
	}
	return &game, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
