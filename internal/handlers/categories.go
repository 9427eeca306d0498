package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blomoto/blomoto-server/internal/models"
	"github.com/blomoto/blomoto-server/internal/repo"
)

type CategoryHandler struct {
	Store repo.Store
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	page, offset, limit := pageParams(c)

	total, cats, err := h.Store.ListCategories(c.Request().Context(), offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, listEnvelope(toCategoryResponses(cats), page, limit, total))
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	cat, err := h.Store.GetCategory(c.Request().Context(), id)
	if err != nil {
		return notFoundOrInternal(err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(cat))
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req struct {
		Name       string `json:"name"`
		ServiceIDs []uint `json:"service_ids"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	cat := models.Category{Name: req.Name}
	if err := h.Store.CreateCategory(c.Request().Context(), &cat, req.ServiceIDs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(&cat))
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name       *string `json:"name"`
		ServiceIDs *[]uint `json:"service_ids"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}

	ctx := c.Request().Context()
	cat, err := h.Store.GetCategory(ctx, id)
	if err != nil {
		return notFoundOrInternal(err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "name is required")
		}
		cat.Name = *req.Name
	}

	var serviceIDs []uint
	if req.ServiceIDs != nil {
		serviceIDs = *req.ServiceIDs
	}
	if err := h.Store.UpdateCategory(ctx, cat, serviceIDs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, toCategoryResponse(cat))
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	cat, err := h.Store.DeleteCategory(c.Request().Context(), id)
	if err != nil {
		return notFoundOrInternal(err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(cat))
}
