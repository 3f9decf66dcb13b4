package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"newsroom/internal/auth"
	"newsroom/internal/errors"
	"newsroom/internal/model"
)

// ClaimsContextKey is where the JWT middleware stores verified *auth.Claims.
const ClaimsContextKey = "user"

// claimsFrom returns the verified claims of the current request.
func claimsFrom(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	if !ok || claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Message: "missing or invalid token",
			Code:    "UNAUTHORIZED",
		})
	}
	return claims, nil
}

// actorFrom returns the authenticated caller of the current request.
func actorFrom(c echo.Context) (model.Actor, error) {
	claims, err := claimsFrom(c)
	if err != nil {
		return model.Actor{}, err
	}
	return claims.Actor(), nil
}

// respondError maps a domain error onto its HTTP status. Unclassified
// errors are logged and answered with a generic 500.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bind decodes and validates a request body into req.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.Validation("body", "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			if f.Tag() == "required" {
				return errors.Validation(f.Field(), f.Field()+" is required")
			}
			return errors.Validation(f.Field(), fmt.Sprintf("%s is invalid", f.Field()))
		}
		return errors.Validation("body", err.Error())
	}
	return nil
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Validation(name, "invalid "+name)
	}
	return uint(id), nil
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
