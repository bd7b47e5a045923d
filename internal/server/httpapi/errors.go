package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cortex-chat/cortex-server/internal/common"
)

var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")

// httpError translates sentinel service errors to HTTP responses. Ownership
// failures arrive here as common.ErrorNotFound, indistinguishable from
// absence, so non-owners learn nothing about a resource's existence.
func httpError(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		return echo.NewHTTPError(http.StatusBadRequest, "already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		return errUnauthorized
	case errors.Is(err, common.ErrorValidation):
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
