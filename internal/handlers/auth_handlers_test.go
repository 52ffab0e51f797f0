package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"shopper-api/internal/models"
	"shopper-api/internal/token"
)

func TestSignup(t *testing.T) {
	env := newTestEnv(t)

	signed := env.signup("a@x.com", "password")

	user := env.user("a@x.com")
	require.Equal(t, "test_user", user.Name)
	require.Equal(t, "password", user.Password)

	userID, err := token.Parse(signed)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)

	cart := user.CartData.Data()
	require.Len(t, cart, 200)
	for id, qty := range cart {
		require.Zero(t, qty, "slot %s should start at zero", id)
	}
	require.Contains(t, cart, "0")
	require.Contains(t, cart, "199")
}

func TestSignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signup("a@x.com", "password")

	payload := map[string]string{
		"username": "someone_else",
		"email":    "a@x.com",
		"password": "other",
	}
	rec, _, c := env.doJSONRequest(http.MethodPost, "/signup", payload)
	require.NoError(t, env.A.Signup(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "Email already exists with different account", resp.Error)

	var count int64
	require.NoError(t, env.DB.Model(&models.User{}).Where("email = ?", "a@x.com").Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{"email": "nobody@x.com", "password": "password"}
	rec, _, c := env.doJSONRequest(http.MethodPost, "/login", payload)
	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, false, resp["success"])
	require.Equal(t, "Email Id doesn't exist", resp["errors"])
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.signup("a@x.com", "password")

	payload := map[string]string{"email": "a@x.com", "password": "wrong"}
	rec, _, c := env.doJSONRequest(http.MethodPost, "/login", payload)
	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, false, resp["success"])
	require.Equal(t, "Password is incorrect", resp["errors"])
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.signup("a@x.com", "password")

	payload := map[string]string{"email": "a@x.com", "password": "password"}
	rec, _, c := env.doJSONRequest(http.MethodPost, "/login", payload)
	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	userID, err := token.Parse(resp.Token)
	require.NoError(t, err)
	require.Equal(t, env.user("a@x.com").ID, userID)
}

func TestLoginMergesGuestCart(t *testing.T) {
	env := newTestEnv(t)
	env.signup("a@x.com", "password")

	payload := map[string]interface{}{
		"email":    "a@x.com",
		"password": "password",
		"cartData": map[string]int{"5": 3, "500": 2},
	}
	rec, _, c := env.doJSONRequest(http.MethodPost, "/login", payload)
	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	cart := env.user("a@x.com").CartData.Data()
	require.Equal(t, 3, cart["5"])
	require.Equal(t, 2, cart["500"])
	// Untouched signup slots survive the merge.
	require.Equal(t, 0, cart["7"])
	require.Len(t, cart, 201)
}
