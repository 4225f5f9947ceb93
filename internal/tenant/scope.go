package tenant

import (
	"github.com/anselmoparente/VemProFut/internal/models"
	"gorm.io/gorm"
)

// ForOwner returns a GORM scope that filters sports centers by owner_id.
func ForOwner(ownerID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("sports_centers.owner_id = ?", ownerID)
	}
}

// LiveFieldIDs is a subquery selecting the ids of live fields that sit in a
// live sports center.
func LiveFieldIDs(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Field{}).
		Select("fields.id").
		Joins("JOIN sports_centers ON sports_centers.id = fields.sports_center_id AND sports_centers.deleted_at IS NULL")
}

// OwnedFieldIDs narrows LiveFieldIDs to centers owned by ownerID. Pass a
// non-zero sportsCenterID to narrow it to one center.
func OwnedFieldIDs(db *gorm.DB, ownerID, sportsCenterID uint) *gorm.DB {
	q := LiveFieldIDs(db).Scopes(ForOwner(ownerID))
	if sportsCenterID != 0 {
		q = q.Where("fields.sports_center_id = ?", sportsCenterID)
	}
	return q
}

// ForLiveGames keeps only games whose field and sports center still exist.
func ForLiveGames(db *gorm.DB) *gorm.DB {
	return db.Where("games.field_id IN (?)", LiveFieldIDs(db))
}

// ForOwnedGames returns a GORM scope that keeps only games played on fields
// of ownerID's sports centers.
func ForOwnedGames(ownerID, sportsCenterID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("games.field_id IN (?)", OwnedFieldIDs(db, ownerID, sportsCenterID))
	}
}
