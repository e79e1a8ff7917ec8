package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"venue-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const defaultCalendarWindowDays = 90

type PublicHandler struct {
	calendar queries.CalendarQueries
	holidays queries.HolidayQueries
}

func NewPublicHandler(calendar queries.CalendarQueries, holidays queries.HolidayQueries) *PublicHandler {
	return &PublicHandler{calendar: calendar, holidays: holidays}
}

// @Summary Public event calendar
// @Description List confirmed events in a date range; no authentication
// @Tags public
// @Produce json
// @Param from query string false "Range start (RFC 3339)"
// @Param to query string false "Range end (RFC 3339)"
// @Success 200 {array} queries.PublicEventView
// @Failure 400 {object} map[string]string
// @Router /public/calendar [get]
func (h *PublicHandler) Calendar(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.calendar.PublicEvents(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// @Summary Public event calendar as iCalendar feed
// @Tags public
// @Produce text/calendar
// @Param from query string false "Range start (RFC 3339)"
// @Param to query string false "Range end (RFC 3339)"
// @Success 200 {string} string
// @Router /public/calendar.ics [get]
func (h *PublicHandler) CalendarICS(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.calendar.PublicEvents(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="venue-calendar.ics"`)
	c.String(http.StatusOK, renderICS(events))
}

// @Summary List holidays for a year
// @Tags public
// @Produce json
// @Param year query int true "Calendar year"
// @Success 200 {array} queries.HolidayView
// @Failure 400 {object} map[string]string
// @Router /holidays [get]
func (h *PublicHandler) Holidays(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	views, err := h.holidays.ListHolidays(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now
	to := now.AddDate(0, 0, defaultCalendarWindowDays)

	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid 'from' timestamp")
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid 'to' timestamp")
		}
		to = t
	}
	return from, to, nil
}

// renderICS emits a minimal RFC 5545 feed. The projection already contains
// only publishable fields, so every event can be written as is.
func renderICS(events []*queries.PublicEventView) string {
	var b strings.Builder
	writeICSLine(&b, "BEGIN:VCALENDAR")
	writeICSLine(&b, "VERSION:2.0")
	writeICSLine(&b, "PRODID:-//venue-reservations//calendar//EN")
	writeICSLine(&b, "CALSCALE:GREGORIAN")

	for _, e := range events {
		writeICSLine(&b, "BEGIN:VEVENT")
		writeICSLine(&b, "UID:"+e.ReservationID.String()+"@venue-reservations")
		writeICSLine(&b, "DTSTART:"+e.StartsAt.UTC().Format("20060102T150405Z"))
		writeICSLine(&b, "DTEND:"+e.EndsAt.UTC().Format("20060102T150405Z"))
		writeICSLine(&b, "SUMMARY:"+escapeICS(e.Title))
		if e.Organization != nil {
			writeICSLine(&b, "DESCRIPTION:"+escapeICS(*e.Organization))
		}
		writeICSLine(&b, "END:VEVENT")
	}

	writeICSLine(&b, "END:VCALENDAR")
	return b.String()
}

func writeICSLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

func escapeICS(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)
	return r.Replace(s)
}
