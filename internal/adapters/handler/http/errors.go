package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// clientErrors are safe to echo back verbatim. The first match wins.
var clientErrors = []error{
	domain.ErrInvalidCredentials,
	domain.ErrUsernameTaken,
	domain.ErrIdempotencyConflict,
	domain.ErrInvalidUsername,
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
	domain.ErrInvalidAge,
	domain.ErrInvalidBodyMetric,
	domain.ErrProfileTooLong,
	domain.ErrInvalidAmount,
	domain.ErrDailyTotalExceeded,
	domain.ErrInvalidDay,
	domain.ErrUnknownMeasure,
	domain.ErrInvalidWorkoutItem,
	domain.ErrInvalidIdempotency,
}

func clientMessage(err error, fallback string) string {
	for _, known := range clientErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return fallback
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAuthFailed):
		c.JSON(http.StatusUnauthorized, errorResponse{clientMessage(err, "authentication failed")})

	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{"account not found"})

	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse{clientMessage(err, "invalid input")})

	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse{clientMessage(err, "conflict")})

	case errors.Is(err, domain.ErrUnavailable):
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, errorResponse{"service temporarily unavailable"})

	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{"internal server error"})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{err.Error()})
}
