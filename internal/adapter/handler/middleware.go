package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/srgjo27/seatlock/internal/platform/metrics"
)

// UserIDHeader carries the caller's identity, set by the gateway in front
// of this service.
const UserIDHeader = "X-User-ID"

const userIDKey = "user_id"

func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Request().Header.Get(UserIDHeader)
		if userID == "" {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing " + UserIDHeader + " header"})
		}
		c.Set(userIDKey, userID)
		return next(c)
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

// Metrics counts requests by route template, method and status code.
func Metrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(path, c.Request().Method, strconv.Itoa(c.Response().Status)).Inc()

		return nil
	}
}
