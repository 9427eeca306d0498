package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blomoto/blomoto-server/internal/models"
)

func TestCreateServiceRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/services/create", map[string]interface{}{
		"name":    "Oil Change",
		"comment": "synthetic oil included",
	})
	require.NoError(t, env.Services.CreateService(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created ServiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	recGet, cGet := env.doJSONRequestID(http.MethodGet, "/api/v1/services/1", nil, created.ID)
	require.NoError(t, env.Services.GetService(cGet))

	var got ServiceResponse
	require.NoError(t, json.Unmarshal(recGet.Body.Bytes(), &got))
	require.Equal(t, "Oil Change", got.Name)
	require.Equal(t, "synthetic oil included", got.Comment)
	require.Empty(t, got.Garages)
}

func TestServiceEmbedsGarageIDsOnly(t *testing.T) {
	env := newTestEnv(t)
	svc := env.createService(t, "Oil Change")
	g := env.createGarage(t, "Acme")
	require.NoError(t, env.DB.Model(g).Association("Services").Replace([]models.Service{*svc}))

	rec, c := env.doJSONRequestID(http.MethodGet, "/api/v1/services/1", nil, svc.ID)
	require.NoError(t, env.Services.GetService(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// The service side is shallow: garage IDs, never nested garage objects.
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	garages, ok := raw["garages"].([]interface{})
	require.True(t, ok)
	require.Len(t, garages, 1)
	_, isNumber := garages[0].(float64)
	require.True(t, isNumber, "garages must be a list of ids")
}

func TestCategoryLinksServices(t *testing.T) {
	env := newTestEnv(t)
	oil := env.createService(t, "Oil Change")
	tires := env.createService(t, "Tire Rotation")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/categories/create", map[string]interface{}{
		"name":        "Maintenance",
		"service_ids": []uint{oil.ID, tires.ID},
	})
	require.NoError(t, env.Categories.CreateCategory(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "Maintenance", created.Name)
	require.ElementsMatch(t, []uint{oil.ID, tires.ID}, created.Services)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/categories/create", map[string]interface{}{})
	requireHTTPError(t, env.Categories.CreateCategory(c), http.StatusBadRequest)
}

func TestDeleteServiceDetachesAndRemoves(t *testing.T) {
	env := newTestEnv(t)
	svc := env.createService(t, "Oil Change")
	g := env.createGarage(t, "Acme")
	require.NoError(t, env.DB.Model(g).Association("Services").Replace([]models.Service{*svc}))

	rec, c := env.doJSONRequestID(http.MethodDelete, "/api/v1/services/1/delete", nil, svc.ID)
	require.NoError(t, env.Services.DeleteService(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.Service{}).Count(&count).Error)
	require.Zero(t, count)

	var garage models.Garage
	require.NoError(t, env.DB.Preload("Services").First(&garage, g.ID).Error)
	require.Empty(t, garage.Services)
}

func TestUpdateServicePartial(t *testing.T) {
	env := newTestEnv(t)
	svc := env.createService(t, "Oil Change")

	rec, c := env.doJSONRequestID(http.MethodPatch, "/api/v1/services/1/update", map[string]interface{}{
		"comment": "now with filter replacement",
	}, svc.ID)
	require.NoError(t, env.Services.UpdateService(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.Service
	require.NoError(t, env.DB.First(&stored, svc.ID).Error)
	require.Equal(t, "Oil Change", stored.Name)
	require.Equal(t, "now with filter replacement", stored.Comment)
}
