package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anselmoparente/VemProFut/internal/config"
	"github.com/anselmoparente/VemProFut/internal/database/dbtest"
	"github.com/anselmoparente/VemProFut/internal/geocode"
	"github.com/anselmoparente/VemProFut/internal/handlers"
	"github.com/anselmoparente/VemProFut/internal/models"
	"github.com/anselmoparente/VemProFut/internal/policy"
	"github.com/anselmoparente/VemProFut/internal/routes"
	"github.com/anselmoparente/VemProFut/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Monday, 2 March 2026.
var gameDay = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

type directoryFunc func(ctx context.Context, zip string) (*geocode.PostalAddress, error)

func (f directoryFunc) Lookup(ctx context.Context, zip string) (*geocode.PostalAddress, error) {
	return f(ctx, zip)
}

type geocoderFunc func(ctx context.Context, q string) (geocode.Coordinates, error)

func (f geocoderFunc) Search(ctx context.Context, q string) (geocode.Coordinates, error) {
	return f(ctx, q)
}

type testAPI struct {
	app *fiber.App
	db  *gorm.DB

	directory directoryFunc
	geocoder  geocoderFunc
}

func newAPI(t *testing.T) *testAPI {
	t.Helper()

	db := dbtest.New(t)
	// tokens are verified against the wall clock, so auth runs on a real one
	cfg := &config.Config{JWTSecret: "test-secret", JWTAccessExpiry: time.Hour, CORSOrigins: "*"}
	gameClock := clockwork.NewFakeClockAt(gameDay)
	gate := policy.NewGate(db)
	authService := services.NewAuthService(db, cfg, clockwork.NewRealClock())

	api := &testAPI{db: db}
	api.directory = func(context.Context, string) (*geocode.PostalAddress, error) {
		return &geocode.PostalAddress{Street: "Avenida Beira Mar", Neighborhood: "Meireles", City: "Fortaleza", State: "CE"}, nil
	}
	api.geocoder = func(context.Context, string) (geocode.Coordinates, error) {
		return geocode.Coordinates{Latitude: -3.72, Longitude: -38.49}, nil
	}
	resolver := geocode.NewResolver(
		directoryFunc(func(ctx context.Context, zip string) (*geocode.PostalAddress, error) { return api.directory(ctx, zip) }),
		geocoderFunc(func(ctx context.Context, q string) (geocode.Coordinates, error) { return api.geocoder(ctx, q) }),
	)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	routes.Setup(app, cfg, authService, routes.Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Health:        handlers.NewHealthHandler(db),
		SportsCenter:  handlers.NewSportsCenterHandler(services.NewSportsCenterService(db, gate)),
		Field:         handlers.NewFieldHandler(services.NewFieldService(db, gate)),
		OperatingHour: handlers.NewOperatingHourHandler(services.NewOperatingHourService(db, gate)),
		Game:          handlers.NewGameHandler(services.NewGameService(db, gate, gameClock, time.UTC)),
		Dashboard:     handlers.NewDashboardHandler(services.NewDashboardService(db, gameClock, time.UTC)),
		Address:       handlers.NewAddressHandler(resolver),
	})
	api.app = app
	return api
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	} else if len(raw) > 0 {
		out["items"] = json.RawMessage(raw)
	}
	return resp.StatusCode, out
}

func (a *testAPI) login(t *testing.T, email string) string {
	t.Helper()
	status, body := a.do(t, http.MethodPost, "/api/login", "", map[string]string{"email": email, "password": dbtest.Password})
	require.Equal(t, http.StatusOK, status, body)
	return body["token"].(string)
}

func sportsCenterPayload() map[string]interface{} {
	return map[string]interface{}{
		"name": "Arena Central", "street": "Rua A", "number": "10", "neighborhood": "Centro",
		"city": "Fortaleza", "state": "CE", "zip_code": "60000-000",
		"latitude": -3.73, "longitude": -38.52,
	}
}

func TestHealth(t *testing.T) {
	api := newAPI(t)

	status, body := api.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["db"])
}

func TestRegisterLoginLogout(t *testing.T) {
	api := newAPI(t)

	status, body := api.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"name": "Dona Arena", "email": "dona@example.com", "password": "password123",
		"role": models.RoleFieldOwner, "client_type": "mobile",
	})
	require.Equal(t, http.StatusCreated, status, body)
	token := body["token"].(string)
	assert.Equal(t, models.RoleFieldOwner, body["user"].(map[string]interface{})["role"])

	status, body = api.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"name": "Outra", "email": "dona@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "email")

	status, body = api.do(t, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "dona@example.com", body["email"])

	status, body = api.do(t, http.MethodPost, "/api/login", "", map[string]string{"email": "dona@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Credenciais inválidas.", body["message"])

	status, body = api.do(t, http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Logout realizado.", body["message"])

	status, body = api.do(t, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Não autenticado.", body["message"])
}

func TestMalformedBodyIsUnprocessable(t *testing.T) {
	api := newAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRoleGate(t *testing.T) {
	api := newAPI(t)
	dbtest.CreateOwner(t, api.db, "owner@example.com")
	dbtest.CreatePlayer(t, api.db, "player@example.com")
	dbtest.CreateUser(t, api.db, "nobody@example.com", 0)

	status, _ := api.do(t, http.MethodGet, "/api/sports-centers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.do(t, http.MethodGet, "/api/sports-centers", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	player := api.login(t, "player@example.com")
	status, body := api.do(t, http.MethodGet, "/api/sports-centers", player, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Acesso negado.", body["message"])

	nobody := api.login(t, "nobody@example.com")
	status, body = api.do(t, http.MethodGet, "/api/dashboard", nobody, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Usuário sem role definida.", body["message"])

	owner := api.login(t, "owner@example.com")
	status, _ = api.do(t, http.MethodGet, "/api/open-games", owner, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// shared endpoints
	status, _ = api.do(t, http.MethodGet, "/api/game-statuses", player, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = api.do(t, http.MethodGet, "/api/game-statuses", owner, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestSportsCenterLifecycle(t *testing.T) {
	api := newAPI(t)
	dbtest.CreateOwner(t, api.db, "owner@example.com")
	dbtest.CreateOwner(t, api.db, "rival@example.com")
	owner := api.login(t, "owner@example.com")
	rival := api.login(t, "rival@example.com")

	status, body := api.do(t, http.MethodPost, "/api/sports-centers", owner, sportsCenterPayload())
	require.Equal(t, http.StatusCreated, status, body)
	id := uint(body["id"].(float64))
	path := fmt.Sprintf("/api/sports-centers/%d", id)

	status, body = api.do(t, http.MethodGet, path+"/operating-hours", owner, nil)
	require.Equal(t, http.StatusOK, status)
	var week []map[string]interface{}
	require.NoError(t, json.Unmarshal(body["items"].(json.RawMessage), &week))
	assert.Len(t, week, 7)

	status, _ = api.do(t, http.MethodGet, path, rival, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = api.do(t, http.MethodGet, "/api/sports-centers/9999", owner, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = api.do(t, http.MethodGet, "/api/sports-centers/abc", owner, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = api.do(t, http.MethodPut, path, owner, map[string]string{"name": "Arena Norte"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Arena Norte", body["name"])
	assert.Equal(t, "Rua A", body["street"])

	status, body = api.do(t, http.MethodPut, path+"/operating-hours", owner, map[string]interface{}{
		"items": []map[string]interface{}{{"day_of_week": 1, "open_time": "10:00", "close_time": "09:00"}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "items.0.close_time")

	status, body = api.do(t, http.MethodPost, path+"/fields", owner, map[string]string{"name": "Campo 1"})
	require.Equal(t, http.StatusCreated, status, body)
	fieldPath := fmt.Sprintf("/api/fields/%d", uint(body["id"].(float64)))

	status, body = api.do(t, http.MethodGet, path+"/fields", owner, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])

	status, _ = api.do(t, http.MethodDelete, fieldPath, rival, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, body = api.do(t, http.MethodDelete, fieldPath, owner, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Campo removido.", body["message"])

	status, body = api.do(t, http.MethodDelete, path, owner, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Sports center removido.", body["message"])
	status, _ = api.do(t, http.MethodGet, path, owner, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGameFlow(t *testing.T) {
	api := newAPI(t)
	ownerUser := dbtest.CreateOwner(t, api.db, "owner@example.com")
	dbtest.CreatePlayer(t, api.db, "ana@example.com")
	dbtest.CreatePlayer(t, api.db, "bia@example.com")
	sc := dbtest.CreateSportsCenter(t, api.db, ownerUser.ID, "Arena")
	field := dbtest.CreateField(t, api.db, sc.ID, "Campo 1")

	owner := api.login(t, "owner@example.com")
	ana := api.login(t, "ana@example.com")
	bia := api.login(t, "bia@example.com")

	status, body := api.do(t, http.MethodPost, "/api/games", ana, map[string]interface{}{
		"field_id": field.ID, "game_date": "2026-03-03", "start_time": "10:00", "end_time": "11:00", "max_players": 2,
	})
	require.Equal(t, http.StatusCreated, status, body)
	gamePath := fmt.Sprintf("/api/games/%d", uint(body["id"].(float64)))

	status, body = api.do(t, http.MethodPost, "/api/games", ana, map[string]interface{}{
		"field_id": field.ID, "game_date": "2026-03-03", "start_time": "10:30", "end_time": "11:30", "max_players": 10,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status, body)

	status, body = api.do(t, http.MethodPost, gamePath+"/join", bia, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.EqualValues(t, models.GameStatusFull, body["status_id"])

	status, body = api.do(t, http.MethodGet, "/api/my-games", bia, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])

	status, body = api.do(t, http.MethodDelete, gamePath+"/leave", bia, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.EqualValues(t, models.GameStatusOpen, body["status_id"])

	status, body = api.do(t, http.MethodGet, "/api/open-games", bia, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])

	status, body = api.do(t, http.MethodGet, "/api/games?date_from=2026-03-01&status_id=1", owner, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])

	status, body = api.do(t, http.MethodGet, "/api/games?date_from=03/01/2026", owner, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "date_from")

	status, body = api.do(t, http.MethodGet, fmt.Sprintf("/api/sports-centers/%d/games", sc.ID), owner, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])

	status, body = api.do(t, http.MethodPatch, gamePath+"/status", owner, map[string]interface{}{"status_id": models.GameStatusCanceled})
	require.Equal(t, http.StatusOK, status, body)
	assert.EqualValues(t, models.GameStatusCanceled, body["status_id"])

	status, body = api.do(t, http.MethodPatch, gamePath+"/status", owner, map[string]interface{}{"status_id": 99})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "status_id")

	status, body = api.do(t, http.MethodGet, "/api/dashboard", owner, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["sports_centers_count"])
	assert.EqualValues(t, 1, body["fields_count"])
}

func TestAddressLookup(t *testing.T) {
	api := newAPI(t)
	dbtest.CreateOwner(t, api.db, "owner@example.com")
	owner := api.login(t, "owner@example.com")

	status, body := api.do(t, http.MethodGet, "/api/address-lookup?zip_code=60165121&number=100", owner, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "60165-121", body["zip_code"])
	assert.Equal(t, "Fortaleza", body["city"])
	assert.InDelta(t, -3.72, body["latitude"], 1e-9)

	status, body = api.do(t, http.MethodGet, "/api/address-lookup?zip_code=60165121", owner, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "number")

	api.geocoder = func(context.Context, string) (geocode.Coordinates, error) {
		return geocode.Coordinates{}, geocode.ErrRateLimited
	}
	status, _ = api.do(t, http.MethodGet, "/api/address-lookup?zip_code=60165121&number=100", owner, nil)
	assert.Equal(t, http.StatusTooManyRequests, status)

	api.geocoder = func(context.Context, string) (geocode.Coordinates, error) {
		return geocode.Coordinates{}, geocode.ErrEmpty
	}
	status, body = api.do(t, http.MethodGet, "/api/address-lookup?zip_code=60165121&number=100&fallback=1", owner, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, geocode.ErrNoCoordinates.Error(), body["message"])

	api.directory = func(context.Context, string) (*geocode.PostalAddress, error) {
		return nil, geocode.ErrZipLookupFailed
	}
	status, body = api.do(t, http.MethodGet, "/api/address-lookup?zip_code=60165121&number=100", owner, nil)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, geocode.ErrZipLookupFailed.Error(), body["message"])
}

func (a *testAPI) raw(t *testing.T, method, path, token, body string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp.StatusCode
}

func TestOwnershipIsCheckedBeforeMalformedBody(t *testing.T) {
	api := newAPI(t)
	alice := dbtest.CreateOwner(t, api.db, "alice@example.com")
	dbtest.CreateOwner(t, api.db, "rival@example.com")
	sc := dbtest.CreateSportsCenter(t, api.db, alice.ID, "Arena")
	field := dbtest.CreateField(t, api.db, sc.ID, "Campo 1")
	game := dbtest.CreateGame(t, api.db, field.ID, alice.ID, gameDay.AddDate(0, 0, 1))

	owner := api.login(t, "alice@example.com")
	rival := api.login(t, "rival@example.com")

	cases := []struct {
		method, path string
	}{
		{http.MethodPut, fmt.Sprintf("/api/sports-centers/%d", sc.ID)},
		{http.MethodPost, fmt.Sprintf("/api/sports-centers/%d/fields", sc.ID)},
		{http.MethodPut, fmt.Sprintf("/api/fields/%d", field.ID)},
		{http.MethodPut, fmt.Sprintf("/api/sports-centers/%d/operating-hours", sc.ID)},
		{http.MethodPatch, fmt.Sprintf("/api/games/%d/status", game.ID)},
	}
	for _, tc := range cases {
		assert.Equal(t, http.StatusForbidden, api.raw(t, tc.method, tc.path, rival, "{broken"), tc.path)
		assert.Equal(t, http.StatusUnprocessableEntity, api.raw(t, tc.method, tc.path, owner, "{broken"), tc.path)
	}
	assert.Equal(t, http.StatusNotFound, api.raw(t, http.MethodPut, "/api/sports-centers/9999", owner, "{broken"))
}

func TestUpdateSportsCenterClearsNullableKeys(t *testing.T) {
	api := newAPI(t)
	alice := dbtest.CreateOwner(t, api.db, "alice@example.com")
	sc := dbtest.CreateSportsCenter(t, api.db, alice.ID, "Arena")
	owner := api.login(t, "alice@example.com")
	path := fmt.Sprintf("/api/sports-centers/%d", sc.ID)

	status, body := api.do(t, http.MethodPut, path, owner, map[string]interface{}{"phone": "85999990000"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "85999990000", body["phone"])

	status, body = api.do(t, http.MethodPut, path, owner, map[string]interface{}{"phone": nil})
	require.Equal(t, http.StatusOK, status, body)
	assert.Nil(t, body["phone"])

	status, body = api.do(t, http.MethodPut, path, owner, map[string]interface{}{"name": nil})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "name")
}
