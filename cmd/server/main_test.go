package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workforce-api/internal/testutil"
)

func TestNewRouter_ServesHealthAndLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	testutil.Seed(t, db)

	clock := func() time.Time { return testutil.Monday.Add(9 * time.Hour) }
	r := newRouter(db, cookie.NewStore([]byte("secret")), clock, zerolog.Nop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := json.Marshal(map[string]string{"username": "neo", "password": testutil.Password})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Result().Cookies())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/organization", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
