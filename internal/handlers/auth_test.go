package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blomoto/blomoto-server/internal/models"
	"github.com/blomoto/blomoto-server/internal/service/token"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"username":         "marie",
		"email":            "marie@example.com",
		"password":         "password",
		"confirm_password": "password",
		"first_name":       "Marie",
		"phone_number":     "0612345678",
		"birth_date":       "1990-04-12",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", payload)
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "marie", resp.Username)
	require.Equal(t, "marie@example.com", resp.Email)
	require.Equal(t, "user", resp.Role)
	require.True(t, resp.IsActive)
	require.NotNil(t, resp.BirthDate)
	require.Equal(t, "1990-04-12", *resp.BirthDate)

	// Wire representation never carries the password in any form.
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.NotContains(t, raw, "password")
	require.NotContains(t, raw, "confirm_password")

	var stored models.User
	require.NoError(t, env.DB.Where("username = ?", "marie").First(&stored).Error)
	require.NotEqual(t, "password", stored.PasswordHash)
	require.NotEmpty(t, stored.PasswordHash)

	// Duplicate username refused.
	_, cDup := env.doJSONRequest(http.MethodPost, "/api/v1/register", payload)
	requireHTTPError(t, env.Auth.Register(cDup), http.StatusBadRequest)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"username":         "paul",
		"password":         "password",
		"confirm_password": "different",
	}
	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", payload)
	requireHTTPError(t, env.Auth.Register(c), http.StatusBadRequest)

	// Nothing was persisted.
	var count int64
	require.NoError(t, env.DB.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "marie")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{
		"username": "marie",
		"password": "password",
	})
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["access_token"])
	require.NotEmpty(t, resp["refresh_token"])

	var stored models.User
	require.NoError(t, env.DB.Where("username = ?", "marie").First(&stored).Error)
	require.NotNil(t, stored.LastLogin)
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "marie")

	// Wrong password and unknown user produce the same generic error.
	_, cWrong := env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{
		"username": "marie",
		"password": "nope",
	})
	heWrong := requireHTTPError(t, env.Auth.Login(cWrong), http.StatusUnauthorized)

	_, cUnknown := env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{
		"username": "nobody",
		"password": "password",
	})
	heUnknown := requireHTTPError(t, env.Auth.Login(cUnknown), http.StatusUnauthorized)

	require.Equal(t, heWrong.Message, heUnknown.Message)
}

func TestLoginInactiveAccount(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "marie")
	require.NoError(t, env.DB.Model(u).Update("is_active", false).Error)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{
		"username": "marie",
		"password": "password",
	})
	requireHTTPError(t, env.Auth.Login(c), http.StatusUnauthorized)
}

func loginTokens(t *testing.T, env *testEnv, username string) (access, refresh string) {
	t.Helper()
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{
		"username": username,
		"password": "password",
	})
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["access_token"], resp["refresh_token"]
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "marie")
	_, refresh := loginTokens(t, env, "marie")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/logout", map[string]string{
		"refresh_token": refresh,
	})
	require.NoError(t, env.Auth.Logout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.RefreshToken
	require.NoError(t, env.DB.Where("token = ?", refresh).First(&stored).Error)
	require.True(t, stored.Revoked)

	// Second logout reports the token as already revoked, not a generic error.
	_, cAgain := env.doJSONRequest(http.MethodPost, "/api/v1/logout", map[string]string{
		"refresh_token": refresh,
	})
	he := requireHTTPError(t, env.Auth.Logout(cAgain), http.StatusUnauthorized)
	require.Equal(t, token.ErrTokenRevoked.Error(), he.Message)
}

func TestLogoutMalformedToken(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/logout", map[string]string{
		"refresh_token": "not-a-jwt",
	})
	he := requireHTTPError(t, env.Auth.Logout(c), http.StatusBadRequest)
	require.Equal(t, token.ErrTokenMalformed.Error(), he.Message)
}

func TestRefreshRotatesTokens(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "marie")
	_, refresh := loginTokens(t, env, "marie")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/token/refresh", map[string]string{
		"refresh_token": refresh,
	})
	require.NoError(t, env.Auth.Refresh(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["access_token"])
	require.NotEmpty(t, resp["refresh_token"])
	require.NotEqual(t, refresh, resp["refresh_token"])

	// The old token was revoked by rotation and cannot be used again.
	_, cAgain := env.doJSONRequest(http.MethodPost, "/api/v1/token/refresh", map[string]string{
		"refresh_token": refresh,
	})
	he := requireHTTPError(t, env.Auth.Refresh(cAgain), http.StatusUnauthorized)
	require.Equal(t, token.ErrTokenRevoked.Error(), he.Message)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "marie")

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/me", nil)
	c.Set("userID", u.ID)
	require.NoError(t, env.Auth.Me(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, u.ID, resp.ID)
	require.Equal(t, "marie", resp.Username)
}
