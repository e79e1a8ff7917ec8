//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"venue-reservations/internal/domain/user"
	"venue-reservations/internal/handler/dto/request"
	"venue-reservations/internal/handler/dto/response"
	"venue-reservations/internal/usecase/queries"
	"venue-reservations/tests/common/authtest"
	"venue-reservations/tests/common/dbtest"
	"venue-reservations/tests/common/httptest"
	"venue-reservations/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL = "/api/auth/login"
	meURL    = "/api/auth/me"
)

type AuthSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) TestLogin() {
	s.Run("Normal case: valid credentials return a token and the user view", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "clerk@example.com", string(user.RoleStaff))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "clerk@example.com", Password: "password123"}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body response.LoginResponse
		httptest.DecodeResponseBody(t, w.Body, &body)
		require.NotEmpty(t, body.AccessToken)

		expected := &queries.AuthorizedUserView{
			Email:    "clerk@example.com",
			Role:     "staff",
			IsActive: true,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(queries.AuthorizedUserView{}, "ID", "DisplayName"),
		}
		if diff := cmp.Diff(expected, body.User, opts...); diff != "" {
			t.Errorf("user view mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: wrong password is rejected", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "clerk@example.com", string(user.RoleStaff))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "clerk@example.com", Password: "wrong-password"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("Error case: unknown email is rejected with the same status", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "nobody@example.com", Password: "password123"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *AuthSuite) TestMe() {
	s.Run("Normal case: token resolves to the current user", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "requester@example.com", string(user.RoleRequester))
		token := authtest.LoginUser(t, s.Router, "requester@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var view queries.AuthorizedUserView
		httptest.DecodeResponseBody(t, w.Body, &view)
		require.Equal(t, "requester@example.com", view.Email)
		require.Equal(t, "requester", view.Role)
	})

	s.Run("Error case: missing token is unauthorized", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("Error case: garbage token is unauthorized", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "not-a-jwt")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
