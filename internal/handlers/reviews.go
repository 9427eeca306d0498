package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blomoto/blomoto-server/internal/events"
	"github.com/blomoto/blomoto-server/internal/models"
	"github.com/blomoto/blomoto-server/internal/repo"
)

type ReviewHandler struct {
	Store    repo.Store
	Producer *events.Producer
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	page, offset, limit := pageParams(c)

	total, reviews, err := h.Store.ListReviews(c.Request().Context(), offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, listEnvelope(toReviewResponses(reviews), page, limit, total))
}

func (h *ReviewHandler) GetReview(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	rev, err := h.Store.GetReview(c.Request().Context(), id)
	if err != nil {
		return notFoundOrInternal(err)
	}
	return c.JSON(http.StatusOK, toReviewResponse(rev))
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req struct {
		UserID   uint   `json:"user_id"`
		GarageID uint   `json:"garage_id"`
		Rating   int    `json:"rating"`
		Comment  string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	if req.UserID == 0 || req.GarageID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id and garage_id are required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	ctx := c.Request().Context()
	if _, err := h.Store.GetUser(ctx, req.UserID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown user_id")
	}
	if _, err := h.Store.GetGarage(ctx, req.GarageID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown garage_id")
	}

	rev := models.Review{
		UserID:   req.UserID,
		GarageID: req.GarageID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := h.Store.CreateReview(ctx, &rev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	publishEvent(c, h.Producer, events.TopicBookingEvents, fmt.Sprint(rev.ID), map[string]interface{}{
		"type":      "review_created",
		"review_id": rev.ID,
		"garage_id": rev.GarageID,
		"rating":    rev.Rating,
	})

	return c.JSON(http.StatusCreated, toReviewResponse(&rev))
}

// UpdateReview only touches rating and comment. created_at and ownership are
// immutable once set.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}

	ctx := c.Request().Context()
	rev, err := h.Store.GetReview(ctx, id)
	if err != nil {
		return notFoundOrInternal(err)
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return echo.NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
		}
		rev.Rating = *req.Rating
	}
	if req.Comment != nil {
		rev.Comment = *req.Comment
	}

	if err := h.Store.UpdateReview(ctx, rev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, toReviewResponse(rev))
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	rev, err := h.Store.DeleteReview(c.Request().Context(), id)
	if err != nil {
		return notFoundOrInternal(err)
	}
	return c.JSON(http.StatusOK, toReviewResponse(rev))
}
