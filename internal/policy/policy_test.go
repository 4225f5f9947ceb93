package policy_test

import (
	"context"
	"testing"
	"time"

	"github.com/anselmoparente/VemProFut/internal/database/dbtest"
	"github.com/anselmoparente/VemProFut/internal/models"
	"github.com/anselmoparente/VemProFut/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	assert.NoError(t, policy.Check(7, 7))
	assert.ErrorIs(t, policy.Check(7, 8), policy.ErrForbidden)
	assert.ErrorIs(t, policy.Check(0, 0), policy.ErrForbidden)
}

func TestGateChains(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	gate := policy.NewGate(db)

	alice := dbtest.CreateOwner(t, db, "alice@example.com")
	bob := dbtest.CreateOwner(t, db, "bob@example.com")
	sc := dbtest.CreateSportsCenter(t, db, alice.ID, "Arena Alice")
	field := dbtest.CreateField(t, db, sc.ID, "Quadra 1")
	game := dbtest.CreateGame(t, db, field.ID, alice.ID, time.Now())

	got, err := gate.SportsCenter(ctx, alice.ID, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, sc.ID, got.ID)

	_, err = gate.SportsCenter(ctx, bob.ID, sc.ID)
	assert.ErrorIs(t, err, policy.ErrForbidden)

	_, err = gate.Field(ctx, alice.ID, field.ID)
	assert.NoError(t, err)
	_, err = gate.Field(ctx, bob.ID, field.ID)
	assert.ErrorIs(t, err, policy.ErrForbidden)

	_, err = gate.Game(ctx, alice.ID, game.ID)
	assert.NoError(t, err)
	_, err = gate.Game(ctx, bob.ID, game.ID)
	assert.ErrorIs(t, err, policy.ErrForbidden)
}

func TestGateMissingRecords(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	gate := policy.NewGate(db)

	owner := dbtest.CreateOwner(t, db, "owner@example.com")
	sc := dbtest.CreateSportsCenter(t, db, owner.ID, "Arena")
	field := dbtest.CreateField(t, db, sc.ID, "Quadra")
	game := dbtest.CreateGame(t, db, field.ID, owner.ID, time.Now())

	_, err := gate.SportsCenter(ctx, owner.ID, 999)
	assert.ErrorIs(t, err, policy.ErrNotFound)
	_, err = gate.Game(ctx, owner.ID, 999)
	assert.ErrorIs(t, err, policy.ErrNotFound)

	// soft-deleting the center hides the field's parent and orphans the game
	require.NoError(t, db.Delete(&models.SportsCenter{}, sc.ID).Error)

	_, err = gate.SportsCenter(ctx, owner.ID, sc.ID)
	assert.ErrorIs(t, err, policy.ErrNotFound)
	_, err = gate.Field(ctx, owner.ID, field.ID)
	assert.ErrorIs(t, err, policy.ErrNotFound)
	_, err = gate.Game(ctx, owner.ID, game.ID)
	assert.ErrorIs(t, err, policy.ErrForbidden)
}
