//go:build e2e

package automation_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"venue-reservations/internal/domain/user"
	"venue-reservations/internal/handler/dto/request"
	"venue-reservations/internal/handler/dto/response"
	"venue-reservations/internal/usecase/automation"
	"venue-reservations/internal/usecase/queries"
	"venue-reservations/tests/common/authtest"
	"venue-reservations/tests/common/dbtest"
	"venue-reservations/tests/common/httptest"
	"venue-reservations/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	runURL     = "/api/automation/run"
	runsURL    = "/api/automation/runs"
	submitURL  = "/api/reservations"
	approveURL = "/api/reservations/%s/approve"
)

type AutomationSuite struct {
	e2e.SharedSuite
}

func TestAutomationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AutomationSuite))
}

func (s *AutomationSuite) submitApproved(t *testing.T, requesterToken, staffToken string) uuid.UUID {
	t.Helper()

	day := time.Now().UTC().AddDate(0, 0, 21)
	start := time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, time.UTC)

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, submitURL, request.SubmitReservationRequest{
		EventName:    "Quarterly Town Hall",
		Organization: "Neighborhood Assoc.",
		ContactName:  "Sam Okafor",
		ContactEmail: "sam@example.com",
		ContactPhone: "555-0175",
		StartsAt:     start,
		EndsAt:       start.Add(3 * time.Hour),
		Attendees:    60,
		IsPublic:     true,
		PolicyAck:    true,
	}, requesterToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body response.SubmittedResponse
	httptest.DecodeResponseBody(t, w.Body, &body)

	w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(approveURL, body.ID), nil, staffToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return body.ID
}

func (s *AutomationSuite) countNotificationJobs(t *testing.T) int {
	t.Helper()
	var n int
	err := s.DB.QueryRow(context.Background(), "SELECT count(*) FROM notification_jobs").Scan(&n)
	require.NoError(t, err)
	return n
}

func (s *AutomationSuite) TestRunDaily() {
	s.Run("Normal case: rerunning the daily automation enqueues no duplicate notifications", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "requester@example.com", string(user.RoleRequester))
		dbtest.CreateTestUser(t, s.DB, "staff@example.com", string(user.RoleStaff))
		dbtest.CreateTestUser(t, s.DB, "manager@example.com", string(user.RoleManager))

		requesterToken := authtest.LoginUser(t, s.Router, "requester@example.com", "password123")
		staffToken := authtest.LoginUser(t, s.Router, "staff@example.com", "password123")
		managerToken := authtest.LoginUser(t, s.Router, "manager@example.com", "password123")

		id := s.submitApproved(t, requesterToken, staffToken)

		// Pull the deposit due date up to today so the run has a reminder to
		// enqueue.
		_, err := s.DB.Exec(context.Background(),
			"UPDATE payment_obligations SET due_date = CURRENT_DATE WHERE reservation_id = $1 AND fee_type = 'deposit'", id)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, runURL, nil, managerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var report automation.Report
		httptest.DecodeResponseBody(t, w.Body, &report)
		require.True(t, report.Success, report.Message)

		counts := map[string]int{}
		for _, tr := range report.Tasks {
			counts[tr.Name] = tr.Count
		}
		require.Equal(t, 1, counts["payment_due_reminders"])

		afterFirst := s.countNotificationJobs(t)
		require.Positive(t, afterFirst)

		// The second run selects the same still-pending obligation, but the
		// dedup key keeps the jobs table unchanged.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, runURL, nil, managerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		httptest.DecodeResponseBody(t, w.Body, &report)
		require.True(t, report.Success, report.Message)

		require.Equal(t, afterFirst, s.countNotificationJobs(t),
			"rerun must not enqueue duplicate notification jobs")

		// Both runs made it into the history.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, runsURL, nil, managerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var runs []*queries.RunView
		httptest.DecodeResponseBody(t, w.Body, &runs)
		require.Len(t, runs, 2)
	})

	s.Run("Error case: staff cannot trigger the automation", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "staff@example.com", string(user.RoleStaff))
		staffToken := authtest.LoginUser(t, s.Router, "staff@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, runURL, nil, staffToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}
