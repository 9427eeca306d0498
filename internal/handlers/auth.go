package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/blomoto/blomoto-server/internal/events"
	"github.com/blomoto/blomoto-server/internal/hash"
	"github.com/blomoto/blomoto-server/internal/models"
	"github.com/blomoto/blomoto-server/internal/repo"
	"github.com/blomoto/blomoto-server/internal/service/token"
)

type AuthHandler struct {
	Store    repo.Store
	Tokens   *token.Service
	Producer *events.Producer
}

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	BirthDate       string `json:"birth_date"`
	PhoneNumber     string `json:"phone_number"`
	ProfilePicture  string `json:"profile_picture"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}

	if req.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	if req.Password != req.ConfirmPassword {
		return echo.NewHTTPError(http.StatusBadRequest, "password and confirm_password do not match")
	}

	birth, err := parseDate(req.BirthDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
	}

	ctx := c.Request().Context()
	if _, err := h.Store.GetUserByUsername(ctx, req.Username); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// The confirmation field never touches the model: only the hash of the
	// password itself is persisted.
	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user := models.User{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   passwordHash,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		BirthDate:      birth,
		PhoneNumber:    req.PhoneNumber,
		ProfilePicture: req.ProfilePicture,
		Role:           "user",
		IsActive:       true,
	}
	if err := h.Store.CreateUser(ctx, &user); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	publishEvent(c, h.Producer, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusCreated, toUserResponse(&user))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}

	ctx := c.Request().Context()

	// One generic message for every credential failure: the response must
	// not reveal whether the username or the password was wrong.
	user, err := h.Store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}
	if !user.IsActive {
		return echo.NewHTTPError(http.StatusUnauthorized, "account disabled")
	}

	access, refresh, err := h.Tokens.Issue(ctx, user.ID, user.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	user.LastLogin = &now
	if err := h.Store.UpdateUser(ctx, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publishEvent(c, h.Producer, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "refresh_token is required")
	}

	if err := h.Tokens.Revoke(c.Request().Context(), req.RefreshToken); err != nil {
		return tokenError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "refresh_token is required")
	}

	access, refresh, err := h.Tokens.Rotate(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return tokenError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.Store.GetUser(c.Request().Context(), userID)
	if err != nil {
		return notFoundOrInternal(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// tokenError maps each refresh-token failure to its own client-visible
// error instead of one catch-all message.
func tokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrTokenMalformed):
		return echo.NewHTTPError(http.StatusBadRequest, token.ErrTokenMalformed.Error())
	case errors.Is(err, token.ErrTokenNotFound):
		return echo.NewHTTPError(http.StatusUnauthorized, token.ErrTokenNotFound.Error())
	case errors.Is(err, token.ErrTokenRevoked):
		return echo.NewHTTPError(http.StatusUnauthorized, token.ErrTokenRevoked.Error())
	case errors.Is(err, token.ErrTokenExpired):
		return echo.NewHTTPError(http.StatusUnauthorized, token.ErrTokenExpired.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
