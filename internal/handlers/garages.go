package handlers

import (
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/blomoto/blomoto-server/internal/events"
	"github.com/blomoto/blomoto-server/internal/logging"
	"github.com/blomoto/blomoto-server/internal/models"
	"github.com/blomoto/blomoto-server/internal/repo"
	"github.com/blomoto/blomoto-server/internal/service/search"
)

type GarageHandler struct {
	Store    repo.Store
	Producer *events.Producer
	ES       *elasticsearch.Client
	Index    string
}

func (h *GarageHandler) ListGarages(c echo.Context) error {
	page, offset, limit := pageParams(c)

	total, garages, err := h.Store.ListGarages(c.Request().Context(), offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, listEnvelope(toGarageResponses(garages), page, limit, total))
}

func (h *GarageHandler) GetGarage(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	g, err := h.Store.GetGarage(c.Request().Context(), id)
	if err != nil {
		return notFoundOrInternal(err)
	}
	return c.JSON(http.StatusOK, toGarageResponse(g))
}

func (h *GarageHandler) CreateGarage(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Address     string `json:"address"`
		PhoneNumber string `json:"phone_number"`
		ServiceIDs  []uint `json:"service_ids"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}

	g := models.Garage{
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	}
	ctx := c.Request().Context()
	if err := h.Store.CreateGarage(ctx, &g, req.ServiceIDs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.indexGarage(c, &g)
	publishEvent(c, h.Producer, events.TopicGarageEvents, fmt.Sprint(g.ID), map[string]interface{}{
		"type":      "garage_created",
		"garage_id": g.ID,
		"name":      g.Name,
	})

	return c.JSON(http.StatusCreated, toGarageResponse(&g))
}

func (h *GarageHandler) UpdateGarage(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name        *string `json:"name"`
		Address     *string `json:"address"`
		PhoneNumber *string `json:"phone_number"`
		ServiceIDs  *[]uint `json:"service_ids"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}

	ctx := c.Request().Context()
	g, err := h.Store.GetGarage(ctx, id)
	if err != nil {
		return notFoundOrInternal(err)
	}

	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Address != nil {
		g.Address = *req.Address
	}
	if req.PhoneNumber != nil {
		g.PhoneNumber = *req.PhoneNumber
	}

	var serviceIDs []uint
	if req.ServiceIDs != nil {
		serviceIDs = *req.ServiceIDs
	}
	if err := h.Store.UpdateGarage(ctx, g, serviceIDs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Reload so a replaced service set is rendered, not the stale one.
	g, err = h.Store.GetGarage(ctx, id)
	if err != nil {
		return notFoundOrInternal(err)
	}

	h.indexGarage(c, g)
	publishEvent(c, h.Producer, events.TopicGarageEvents, fmt.Sprint(g.ID), map[string]interface{}{
		"type":      "garage_updated",
		"garage_id": g.ID,
		"name":      g.Name,
	})

	return c.JSON(http.StatusOK, toGarageResponse(g))
}

func (h *GarageHandler) DeleteGarage(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	g, err := h.Store.DeleteGarage(ctx, id)
	if err != nil {
		return notFoundOrInternal(err)
	}

	if err := search.DeleteGarage(ctx, h.ES, h.Index, id); err != nil {
		logging.FromContext(ctx).Error("deindex garage failed", "garage_id", id, "error", err)
	}
	publishEvent(c, h.Producer, events.TopicGarageEvents, fmt.Sprint(id), map[string]interface{}{
		"type":      "garage_deleted",
		"garage_id": id,
	})

	return c.JSON(http.StatusOK, toGarageResponse(g))
}

func (h *GarageHandler) indexGarage(c echo.Context, g *models.Garage) {
	ctx := c.Request().Context()
	if err := search.IndexGarage(ctx, h.ES, h.Index, g); err != nil {
		logging.FromContext(ctx).Error("index garage failed", "garage_id", g.ID, "error", err)
	}
}
