package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blomoto/blomoto-server/internal/models"
)

func TestCreateReviewRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "marie")
	g := env.createGarage(t, "Acme")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/reviews/create", map[string]interface{}{
		"user_id":   u.ID,
		"garage_id": g.ID,
		"rating":    4,
		"comment":   "quick and honest",
	})
	require.NoError(t, env.Reviews.CreateReview(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	recGet, cGet := env.doJSONRequestID(http.MethodGet, "/api/v1/reviews/1", nil, created.ID)
	require.NoError(t, env.Reviews.GetReview(cGet))
	require.Equal(t, http.StatusOK, recGet.Code)

	var got ReviewResponse
	require.NoError(t, json.Unmarshal(recGet.Body.Bytes(), &got))
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, u.ID, got.UserID)
	require.Equal(t, g.ID, got.GarageID)
	require.Equal(t, 4, got.Rating)
	require.Equal(t, "quick and honest", got.Comment)
	require.False(t, got.CreatedAt.IsZero())
}

func TestCreateReviewRejectsBadRating(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "marie")
	g := env.createGarage(t, "Acme")

	for _, rating := range []int{0, 6, -1} {
		_, c := env.doJSONRequest(http.MethodPost, "/api/v1/reviews/create", map[string]interface{}{
			"user_id":   u.ID,
			"garage_id": g.ID,
			"rating":    rating,
		})
		requireHTTPError(t, env.Reviews.CreateReview(c), http.StatusBadRequest)
	}

	var count int64
	require.NoError(t, env.DB.Model(&models.Review{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateReviewUnknownOwner(t *testing.T) {
	env := newTestEnv(t)
	g := env.createGarage(t, "Acme")

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/reviews/create", map[string]interface{}{
		"user_id":   99,
		"garage_id": g.ID,
		"rating":    3,
	})
	requireHTTPError(t, env.Reviews.CreateReview(c), http.StatusBadRequest)
}

func TestUpdateReviewKeepsCreatedAt(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "marie")
	g := env.createGarage(t, "Acme")

	rev := models.Review{UserID: u.ID, GarageID: g.ID, Rating: 2, Comment: "meh"}
	require.NoError(t, env.DB.Create(&rev).Error)
	createdAt := rev.CreatedAt

	rec, c := env.doJSONRequestID(http.MethodPatch, "/api/v1/reviews/1/update", map[string]interface{}{
		"rating":  5,
		"comment": "they fixed it after all",
	}, rev.ID)
	require.NoError(t, env.Reviews.UpdateReview(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.Review
	require.NoError(t, env.DB.First(&stored, rev.ID).Error)
	require.Equal(t, 5, stored.Rating)
	require.Equal(t, "they fixed it after all", stored.Comment)
	require.Equal(t, createdAt.UTC(), stored.CreatedAt.UTC())
}

func TestDeleteReviewReturnsRepresentation(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "marie")
	g := env.createGarage(t, "Acme")

	rev := models.Review{UserID: u.ID, GarageID: g.ID, Rating: 1}
	require.NoError(t, env.DB.Create(&rev).Error)

	rec, c := env.doJSONRequestID(http.MethodDelete, "/api/v1/reviews/1/delete", nil, rev.ID)
	require.NoError(t, env.Reviews.DeleteReview(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, rev.ID, resp.ID)

	var count int64
	require.NoError(t, env.DB.Model(&models.Review{}).Count(&count).Error)
	require.Zero(t, count)
}
