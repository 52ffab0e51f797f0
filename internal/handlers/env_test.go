package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shopper-api/internal/handlers"
	"shopper-api/internal/models"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
	A  *handlers.AuthHandler
	C  *handlers.CartHandler
	P  *handlers.ProductHandler
}

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache DB keeps gorm's pooled connections on the same
	// in-memory database while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.User{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := initTestDB(t)
	env := &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,
		A:  &handlers.AuthHandler{DB: db},
		C:  &handlers.CartHandler{DB: db},
		P:  &handlers.ProductHandler{DB: db},
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return env
}

func (env *testEnv) doJSONRequest(method, path string, payload interface{}, headers ...http.Header) (*httptest.ResponseRecorder, *http.Request, echo.Context) {
	env.T.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(env.T, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, h := range headers {
		for k, vs := range h {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, req, c
}

// signup registers a user through the handler and returns its token.
func (env *testEnv) signup(email, password string) string {
	env.T.Helper()

	payload := map[string]string{
		"username": "test_user",
		"email":    email,
		"password": password,
	}
	rec, _, c := env.doJSONRequest(http.MethodPost, "/signup", payload)
	require.NoError(env.T, env.A.Signup(c))
	require.Equal(env.T, http.StatusOK, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(env.T, resp.Success)
	require.NotEmpty(env.T, resp.Token)
	return resp.Token
}

func (env *testEnv) user(email string) *models.User {
	env.T.Helper()

	var user models.User
	require.NoError(env.T, env.DB.Where("email = ?", email).First(&user).Error)
	return &user
}
