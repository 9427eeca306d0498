package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blomoto/blomoto-server/internal/models"
	"github.com/blomoto/blomoto-server/internal/repo"
)

// FavoriteHandler manages the authenticated user's favorite garages. The
// owner always comes from the bearer token, never from the payload.
type FavoriteHandler struct {
	Store repo.Store
}

func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	favs, err := h.Store.ListFavorites(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toFavoriteResponses(favs))
}

func (h *FavoriteHandler) CreateFavorite(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req struct {
		GarageID uint `json:"garage_id"`
	}
	if err := c.Bind(&req); err != nil || req.GarageID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "garage_id is required")
	}

	ctx := c.Request().Context()
	if _, err := h.Store.GetGarage(ctx, req.GarageID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown garage_id")
	}

	exists, err := h.Store.FavoriteExists(ctx, userID, req.GarageID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if exists {
		return echo.NewHTTPError(http.StatusBadRequest, "garage already in favorites")
	}

	fav := models.Favorite{UserID: userID, GarageID: req.GarageID}
	if err := h.Store.CreateFavorite(ctx, &fav); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, toFavoriteResponse(&fav))
}

func (h *FavoriteHandler) DeleteFavorite(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	fav, err := h.Store.DeleteFavorite(c.Request().Context(), id, userID)
	if err != nil {
		return notFoundOrInternal(err)
	}
	return c.JSON(http.StatusOK, toFavoriteResponse(fav))
}
