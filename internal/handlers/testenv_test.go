package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/blomoto/blomoto-server/internal/hash"
	"github.com/blomoto/blomoto-server/internal/models"
	"github.com/blomoto/blomoto-server/internal/repo"
	"github.com/blomoto/blomoto-server/internal/service/token"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Store  repo.Store
	Tokens *token.Service

	Auth         *AuthHandler
	Users        *UserHandler
	Services     *ServiceHandler
	Categories   *CategoryHandler
	Garages      *GarageHandler
	Reviews      *ReviewHandler
	Appointments *AppointmentHandler
	Favorites    *FavoriteHandler
}

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := initTestDB(t)
	store := repo.NewGorm(db)
	tokens := &token.Service{
		Store:         store,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	return &testEnv{
		T:            t,
		E:            echo.New(),
		DB:           db,
		Store:        store,
		Tokens:       tokens,
		Auth:         &AuthHandler{Store: store, Tokens: tokens},
		Users:        &UserHandler{Store: store},
		Services:     &ServiceHandler{Store: store},
		Categories:   &CategoryHandler{Store: store},
		Garages:      &GarageHandler{Store: store},
		Reviews:      &ReviewHandler{Store: store},
		Appointments: &AppointmentHandler{Store: store},
		Favorites:    &FavoriteHandler{Store: store},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) doJSONRequestID(method, path string, body interface{}, id uint) (*httptest.ResponseRecorder, echo.Context) {
	rec, c := env.doJSONRequest(method, path, body)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(id), 10))
	return rec, c
}

func (env *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	passwordHash, err := hash.HashPassword("password")
	require.NoError(t, err)
	u := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         "user",
		IsActive:     true,
	}
	require.NoError(t, env.DB.Create(u).Error)
	return u
}

func (env *testEnv) createGarage(t *testing.T, name string) *models.Garage {
	t.Helper()
	g := &models.Garage{Name: name, Address: "1 Main St", PhoneNumber: "0150000000"}
	require.NoError(t, env.DB.Create(g).Error)
	return g
}

func (env *testEnv) createService(t *testing.T, name string) *models.Service {
	t.Helper()
	s := &models.Service{Name: name}
	require.NoError(t, env.DB.Create(s).Error)
	return s
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func requireHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
	return he
}
