package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vileyy/admin-halora-app/internal/analytics"
	"github.com/Vileyy/admin-halora-app/internal/logger"
	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/service"
	"github.com/Vileyy/admin-halora-app/pkg/response"
)

// writeError maps service errors onto HTTP statuses. Unknown errors are
// logged and answered with 500.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidStatus):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	c.JSON(status, response.Error(status, err.Error()))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, msg))
}

// queryInt reads an optional integer query parameter. Missing values yield 0.
func queryInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return v, nil
}

// parseRevenueFilter reads month, year and category. "all" selects every category.
func parseRevenueFilter(c *gin.Context) (analytics.RevenueFilter, error) {
	month, err := queryInt(c, "month")
	if err != nil {
		return analytics.RevenueFilter{}, err
	}
	if month < 0 || month > 12 {
		return analytics.RevenueFilter{}, errors.New("month must be between 1 and 12")
	}
	year, err := queryInt(c, "year")
	if err != nil {
		return analytics.RevenueFilter{}, err
	}
	if year < 0 {
		return analytics.RevenueFilter{}, errors.New("year must be positive")
	}

	category := c.Query("category")
	if category == "all" {
		category = ""
	}
	return analytics.RevenueFilter{Month: month, Year: year, Category: category}, nil
}

// monthOrCurrent fills a missing month or year from the current date.
func monthOrCurrent(c *gin.Context) (int, int, error) {
	month, err := queryInt(c, "month")
	if err != nil {
		return 0, 0, err
	}
	year, err := queryInt(c, "year")
	if err != nil {
		return 0, 0, err
	}

	now := time.Now().In(model.DefaultLocation)
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	return month, year, nil
}

// parseDateBound parses a date filter. A date-only upper bound covers the whole day.
func parseDateBound(raw string, upper bool) (time.Time, bool) {
	t, ok := model.ParseTimestamp(raw)
	if !ok {
		return time.Time{}, false
	}
	if upper && len(strings.TrimSpace(raw)) == len("2006-01-02") {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, true
}

var openEnd = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// parseDateRange builds an inclusive range from optional bounds. It returns nil
// when neither bound is set, or a message describing the invalid bound.
func parseDateRange(startRaw, endRaw string) (*analytics.DateRange, string) {
	if startRaw == "" && endRaw == "" {
		return nil, ""
	}
	r := &analytics.DateRange{End: openEnd}
	if startRaw != "" {
		start, ok := parseDateBound(startRaw, false)
		if !ok {
			return nil, "start_date is not a valid date"
		}
		r.Start = start
	}
	if endRaw != "" {
		end, ok := parseDateBound(endRaw, true)
		if !ok {
			return nil, "end_date is not a valid date"
		}
		r.End = end
	}
	return r, ""
}
