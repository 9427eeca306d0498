package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/blomoto/blomoto-server/internal/events"
	"github.com/blomoto/blomoto-server/internal/models"
	"github.com/blomoto/blomoto-server/internal/repo"
)

type AppointmentHandler struct {
	Store    repo.Store
	Producer *events.Producer
}

func (h *AppointmentHandler) ListAppointments(c echo.Context) error {
	page, offset, limit := pageParams(c)

	total, appts, err := h.Store.ListAppointments(c.Request().Context(), offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, listEnvelope(toAppointmentResponses(appts), page, limit, total))
}

func (h *AppointmentHandler) GetAppointment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	a, err := h.Store.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return notFoundOrInternal(err)
	}
	return c.JSON(http.StatusOK, toAppointmentResponse(a))
}

func (h *AppointmentHandler) CreateAppointment(c echo.Context) error {
	var req struct {
		UserID          uint      `json:"user_id"`
		GarageID        uint      `json:"garage_id"`
		ServiceID       uint      `json:"service_id"`
		AppointmentDate time.Time `json:"appointment_date"`
		Status          string    `json:"status"`
		Description     string    `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	if req.UserID == 0 || req.GarageID == 0 || req.ServiceID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id, garage_id and service_id are required")
	}
	if req.AppointmentDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "appointment_date is required")
	}
	if req.Status == "" {
		req.Status = models.StatusScheduled
	}
	if !models.ValidStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be scheduled, completed or canceled")
	}

	ctx := c.Request().Context()
	if _, err := h.Store.GetUser(ctx, req.UserID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown user_id")
	}
	if _, err := h.Store.GetGarage(ctx, req.GarageID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown garage_id")
	}
	if _, err := h.Store.GetService(ctx, req.ServiceID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown service_id")
	}

	a := models.Appointment{
		UserID:          req.UserID,
		GarageID:        req.GarageID,
		ServiceID:       req.ServiceID,
		AppointmentDate: req.AppointmentDate,
		Status:          req.Status,
		Description:     req.Description,
	}
	if err := h.Store.CreateAppointment(ctx, &a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	publishEvent(c, h.Producer, events.TopicBookingEvents, fmt.Sprint(a.ID), map[string]interface{}{
		"type":           "appointment_created",
		"appointment_id": a.ID,
		"garage_id":      a.GarageID,
		"service_id":     a.ServiceID,
		"status":         a.Status,
	})

	return c.JSON(http.StatusCreated, toAppointmentResponse(&a))
}

func (h *AppointmentHandler) UpdateAppointment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		AppointmentDate *time.Time `json:"appointment_date"`
		Status          *string    `json:"status"`
		Description     *string    `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}

	ctx := c.Request().Context()
	a, err := h.Store.GetAppointment(ctx, id)
	if err != nil {
		return notFoundOrInternal(err)
	}

	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return echo.NewHTTPError(http.StatusBadRequest, "status must be scheduled, completed or canceled")
		}
		if !models.ValidStatusTransition(a.Status, *req.Status) {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("illegal status transition %s -> %s", a.Status, *req.Status))
		}
		a.Status = *req.Status
	}
	if req.AppointmentDate != nil {
		a.AppointmentDate = *req.AppointmentDate
	}
	if req.Description != nil {
		a.Description = *req.Description
	}

	if err := h.Store.UpdateAppointment(ctx, a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	publishEvent(c, h.Producer, events.TopicBookingEvents, fmt.Sprint(a.ID), map[string]interface{}{
		"type":           "appointment_updated",
		"appointment_id": a.ID,
		"status":         a.Status,
	})

	return c.JSON(http.StatusOK, toAppointmentResponse(a))
}

func (h *AppointmentHandler) DeleteAppointment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	a, err := h.Store.DeleteAppointment(c.Request().Context(), id)
	if err != nil {
		return notFoundOrInternal(err)
	}
	return c.JSON(http.StatusOK, toAppointmentResponse(a))
}
