// Package dbtest opens migrated, seeded in-memory databases for tests.
package dbtest

import (
	"testing"
	"time"

	"github.com/anselmoparente/VemProFut/internal/database"
	"github.com/anselmoparente/VemProFut/internal/models"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain-text password of every user created by CreateUser.
const Password = "secret123"

// New returns a fresh SQLite database with the schema migrated and lookup
// tables seeded. The database is closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// every connection to :memory: is its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, email string, roleID uint) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Name: email, Email: email, PasswordHash: string(hash)}
	if roleID != 0 {
		user.RoleID = &roleID
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := db.Preload("Role").First(user, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return user
}

func CreateOwner(t testing.TB, db *gorm.DB, email string) *models.User {
	return CreateUser(t, db, email, models.RoleIDFieldOwner)
}

func CreatePlayer(t testing.TB, db *gorm.DB, email string) *models.User {
	return CreateUser(t, db, email, models.RoleIDPlayer)
}

// CreateSportsCenter inserts a center with a full default week.
func CreateSportsCenter(t testing.TB, db *gorm.DB, ownerID uint, name string) *models.SportsCenter {
	t.Helper()

	sc := &models.SportsCenter{
		OwnerID:      ownerID,
		Name:         name,
		Street:       "Rua das Flores",
		Number:       "100",
		Neighborhood: "Centro",
		City:         "Fortaleza",
		State:        "CE",
		ZipCode:      "60000-000",
		Latitude:     -3.7319,
		Longitude:    -38.5267,
	}
	if err := db.Create(sc).Error; err != nil {
		t.Fatalf("create sports center: %v", err)
	}
	week := models.DefaultWeek(sc.ID)
	if err := db.Create(&week).Error; err != nil {
		t.Fatalf("create operating hours: %v", err)
	}
	return sc
}

func CreateField(t testing.TB, db *gorm.DB, sportsCenterID uint, name string) *models.Field {
	t.Helper()

	f := &models.Field{SportsCenterID: sportsCenterID, Name: name}
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("create field: %v", err)
	}
	return f
}

// CreateGame inserts an open game from 09:00 to 10:00 on day.
func CreateGame(t testing.TB, db *gorm.DB, fieldID, organizerID uint, day time.Time) *models.Game {
	t.Helper()
	return CreateGameAt(t, db, fieldID, organizerID, day, datatypes.NewTime(9, 0, 0, 0), datatypes.NewTime(10, 0, 0, 0))
}

func CreateGameAt(t testing.TB, db *gorm.DB, fieldID, organizerID uint, day time.Time, start, end datatypes.Time) *models.Game {
	t.Helper()

	g := &models.Game{
		GameDate:    models.NewDate(day),
		StartTime:   start,
		EndTime:     end,
		MaxPlayers:  10,
		StatusID:    models.GameStatusOpen,
		FieldID:     fieldID,
		OrganizerID: organizerID,
	}
	if err := db.Create(g).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}
	return g
}
