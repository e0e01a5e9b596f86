package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/helpdesk/internal/access"
	"github.com/Skotchmaster/helpdesk/internal/middleware/auth"
	"github.com/Skotchmaster/helpdesk/internal/service"
	"github.com/Skotchmaster/helpdesk/internal/util"
)

const maxScalarBody = 64 << 10

// fail maps a service error to an HTTP error and logs it under op.
func fail(l *slog.Logger, op string, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		l.Warn(op+"_error", "status", he.Code, "reason", he.Message, "error", err)
		return he
	}

	code, msg := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInUse):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		code, msg = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, service.ErrInvalidRefreshToken):
		code, msg = http.StatusUnauthorized, "invalid refresh token"
	}
	if code == http.StatusInternalServerError {
		l.Error(op+"_error", "status", code, "error", err)
		return echo.NewHTTPError(code, msg)
	}
	if m := service.Message(err); m != "" {
		msg = m
	}
	l.Warn(op+"_error", "status", code, "reason", msg, "error", err)
	return echo.NewHTTPError(code, msg)
}

func parseID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return uint(v), nil
}

func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body").SetInternal(err)
	}
	return c.Validate(req)
}

// bindScalar accepts either a bare JSON string or an object carrying the
// value under field.
func bindScalar(c echo.Context, field string) (string, error) {
	v, present, err := readScalar(c, field)
	if err != nil {
		return "", err
	}
	if !present {
		return "", echo.NewHTTPError(http.StatusBadRequest, "campo "+field+" é obrigatório")
	}
	return v, nil
}

// bindOptionalBool reads a boolean scalar body, returning def when the body is empty.
func bindOptionalBool(c echo.Context, field string, def bool) (bool, error) {
	v, present, err := readScalar(c, field)
	if err != nil {
		return false, err
	}
	if !present {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(v)))
	if err != nil {
		return false, echo.NewHTTPError(http.StatusBadRequest, "campo "+field+" deve ser true ou false")
	}
	return b, nil
}

// readScalar accepts a bare JSON scalar or an object carrying it under field.
// present is false for an empty body or an object without field.
func readScalar(c echo.Context, field string) (value string, present bool, err error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxScalarBody))
	if err != nil {
		return "", false, echo.NewHTTPError(http.StatusBadRequest, "invalid body").SetInternal(err)
	}
	body = []byte(strings.TrimSpace(string(body)))
	if len(body) == 0 {
		return "", false, nil
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", false, echo.NewHTTPError(http.StatusBadRequest, "invalid body").SetInternal(err)
	}
	if obj, ok := raw.(map[string]any); ok {
		raw, present = obj[field]
		if !present {
			return "", false, nil
		}
	}
	switch v := raw.(type) {
	case string:
		return v, true, nil
	case bool, float64:
		return jsonString(v), true, nil
	default:
		return "", false, echo.NewHTTPError(http.StatusBadRequest, "campo "+field+" é obrigatório")
	}
}

func jsonString(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func pageRequest(c echo.Context) util.PageRequest {
	return util.NormalizePage(
		util.ParseIntDefault(c.QueryParam("page"), 1),
		util.ParseIntDefault(c.QueryParam("pageSize"), util.DefaultPageSize),
	)
}

func identity(c echo.Context) access.Identity {
	id, _ := auth.IdentityFrom(c)
	return id
}
