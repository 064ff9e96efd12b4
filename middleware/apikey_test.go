package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doAdmin(key string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/admin/ping", ValidateAPIKey, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if key != "" {
		req.Header.Set("X-API-KEY", key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateAPIKey(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "secret-key")

	assert.Equal(t, http.StatusOK, doAdmin("secret-key").Code)
	assert.Equal(t, http.StatusUnauthorized, doAdmin("wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, doAdmin("").Code)
}

// An unset server key rejects everything rather than matching an empty header.
func TestValidateAPIKeyUnsetKey(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "")

	assert.Equal(t, http.StatusUnauthorized, doAdmin("").Code)
}
