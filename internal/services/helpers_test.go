package services_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/anselmoparente/VemProFut/internal/config"
	"github.com/anselmoparente/VemProFut/internal/database/dbtest"
	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/policy"
	"github.com/anselmoparente/VemProFut/internal/services"
	"github.com/anselmoparente/VemProFut/internal/validation"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Monday, 2 March 2026.
var testNow = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

type fixture struct {
	db    *gorm.DB
	clock *clockwork.FakeClock
	cfg   *config.Config

	auth      *services.AuthService
	centers   *services.SportsCenterService
	fields    *services.FieldService
	hours     *services.OperatingHourService
	games     *services.GameService
	dashboard *services.DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.New(t)
	clock := clockwork.NewFakeClockAt(testNow)
	cfg := &config.Config{JWTSecret: "test-secret", JWTAccessExpiry: time.Hour}
	gate := policy.NewGate(db)

	return &fixture{
		db:        db,
		clock:     clock,
		cfg:       cfg,
		auth:      services.NewAuthService(db, cfg, clock),
		centers:   services.NewSportsCenterService(db, gate),
		fields:    services.NewFieldService(db, gate),
		hours:     services.NewOperatingHourService(db, gate),
		games:     services.NewGameService(db, gate, clock, time.UTC),
		dashboard: services.NewDashboardService(db, clock, time.UTC),
	}
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *validation.Errors
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	return verr.Fields
}

func ptr[T any](v T) *T { return &v }

func sent[T any](v T) dto.Optional[T] { return dto.Optional[T]{Value: v, Set: true} }

// decode builds a request the way the HTTP layer does, from a raw JSON body.
func decode[T any](t *testing.T, body string) *T {
	t.Helper()
	req := new(T)
	require.NoError(t, json.Unmarshal([]byte(body), req))
	return req
}
