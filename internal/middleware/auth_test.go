package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messenger-service/internal/auth"
)

func setupIdentityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Identity(auth.PlainTokens{}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetInt("userID")})
	})
	return r
}

func TestIdentityMissingHeader(t *testing.T) {
	router := setupIdentityRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestIdentityInvalidToken(t *testing.T) {
	router := setupIdentityRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(IdentityHeader, "not-a-number")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentityResolvesUser(t *testing.T) {
	router := setupIdentityRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(IdentityHeader, "7")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userID":7}`, rec.Body.String())
}
