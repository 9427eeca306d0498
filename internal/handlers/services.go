package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blomoto/blomoto-server/internal/models"
	"github.com/blomoto/blomoto-server/internal/repo"
)

type ServiceHandler struct {
	Store repo.Store
}

func (h *ServiceHandler) ListServices(c echo.Context) error {
	page, offset, limit := pageParams(c)

	total, svcs, err := h.Store.ListServices(c.Request().Context(), offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, listEnvelope(toServiceResponses(svcs), page, limit, total))
}

func (h *ServiceHandler) GetService(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	svc, err := h.Store.GetService(c.Request().Context(), id)
	if err != nil {
		return notFoundOrInternal(err)
	}
	return c.JSON(http.StatusOK, toServiceResponse(svc))
}

func (h *ServiceHandler) CreateService(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Picture     string `json:"picture"`
		Comment     string `json:"comment"`
		CategoryIDs []uint `json:"category_ids"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}

	svc := models.Service{
		Name:    req.Name,
		Picture: req.Picture,
		Comment: req.Comment,
	}
	if err := h.Store.CreateService(c.Request().Context(), &svc, req.CategoryIDs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, toServiceResponse(&svc))
}

func (h *ServiceHandler) UpdateService(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name        *string `json:"name"`
		Picture     *string `json:"picture"`
		Comment     *string `json:"comment"`
		CategoryIDs *[]uint `json:"category_ids"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}

	ctx := c.Request().Context()
	svc, err := h.Store.GetService(ctx, id)
	if err != nil {
		return notFoundOrInternal(err)
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Picture != nil {
		svc.Picture = *req.Picture
	}
	if req.Comment != nil {
		svc.Comment = *req.Comment
	}

	var categoryIDs []uint
	if req.CategoryIDs != nil {
		categoryIDs = *req.CategoryIDs
	}
	if err := h.Store.UpdateService(ctx, svc, categoryIDs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, toServiceResponse(svc))
}

func (h *ServiceHandler) DeleteService(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	svc, err := h.Store.DeleteService(c.Request().Context(), id)
	if err != nil {
		return notFoundOrInternal(err)
	}
	return c.JSON(http.StatusOK, toServiceResponse(svc))
}
