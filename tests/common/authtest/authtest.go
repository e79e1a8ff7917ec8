//go:build e2e

package authtest

import (
	"net/http"
	"testing"

	"venue-reservations/internal/handler/dto/request"
	"venue-reservations/internal/handler/dto/response"
	"venue-reservations/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginUser authenticates through the real login endpoint and returns the
// bearer token from the JSON response.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body response.LoginResponse
	httptest.DecodeResponseBody(t, w.Body, &body)
	require.NotEmpty(t, body.AccessToken, "access token missing from login response")

	return body.AccessToken
}
