package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/blomoto/blomoto-server/internal/models"
	"github.com/blomoto/blomoto-server/internal/repo"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

type Service struct {
	Store         repo.TokenStore
	JWTSecret     []byte
	RefreshSecret []byte
}

func SignAccessToken(userID uint, role string, accessSecret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(AccessTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(accessSecret)
}

func SignRefreshToken(userID uint, role string, refreshSecret []byte) (string, error) {
	// Nanosecond jti keeps two tokens for the same user distinct even when
	// signed within the same second, e.g. during rotation.
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(RefreshTTL).Unix(),
		"jti":  strconv.FormatInt(time.Now().UnixNano(), 10),
		"typ":  "refresh",
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(refreshSecret)
}

// Issue signs a fresh access/refresh pair and persists the refresh side.
func (s *Service) Issue(ctx context.Context, userID uint, role string) (access, refresh string, err error) {
	access, err = SignAccessToken(userID, role, s.JWTSecret)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}
	refresh, err = SignRefreshToken(userID, role, s.RefreshSecret)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	if err := s.Store.SaveRefreshToken(ctx, &models.RefreshToken{
		Token:     refresh,
		UserID:    userID,
		ExpiresAt: time.Now().Add(RefreshTTL).Unix(),
	}); err != nil {
		return "", "", fmt.Errorf("save refresh token: %w", err)
	}
	return access, refresh, nil
}

// ValidateRefresh checks the signature, the typ claim and the stored row.
// Failures come back as the sentinel errors from errors.go.
func (s *Service) ValidateRefresh(ctx context.Context, raw string) (jwt.MapClaims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return s.RefreshSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !t.Valid {
		return nil, ErrTokenMalformed
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}
	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return nil, ErrTokenMalformed
	}

	stored, err := s.Store.GetRefreshToken(ctx, raw)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if stored.Revoked {
		return nil, ErrTokenRevoked
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

// Rotate revokes the presented refresh token and issues a new pair.
func (s *Service) Rotate(ctx context.Context, raw string) (access, refresh string, err error) {
	claims, err := s.ValidateRefresh(ctx, raw)
	if err != nil {
		return "", "", err
	}

	userID := uint(claims["sub"].(float64))
	role, _ := claims["role"].(string)

	if err := s.Store.RevokeRefreshToken(ctx, raw); err != nil {
		return "", "", fmt.Errorf("revoke refresh token: %w", err)
	}
	return s.Issue(ctx, userID, role)
}

// Revoke invalidates a refresh token presented at logout. The token is
// validated first so the caller learns the precise failure.
func (s *Service) Revoke(ctx context.Context, raw string) error {
	if _, err := s.ValidateRefresh(ctx, raw); err != nil {
		return err
	}
	if err := s.Store.RevokeRefreshToken(ctx, raw); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// RequireAuth parses a Bearer access token and puts userID and role on the
// echo context.
func (s *Service) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get(echo.HeaderAuthorization)
		raw, found := strings.CutPrefix(auth, "Bearer ")
		if !found || raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
			}
			return s.JWTSecret, nil
		})
		if err != nil || !t.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		claims, ok := t.Claims.(jwt.MapClaims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}
		c.Set("userID", uint(sub))
		if role, ok := claims["role"].(string); ok {
			c.Set("role", role)
		}
		return next(c)
	}
}
