package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/helpdesk/internal/access"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
	"github.com/Skotchmaster/helpdesk/pkg/tokens"
)

const ctxIdentity = "identity"

type Verifier interface {
	Parse(token string) (*tokens.AccessClaims, error)
}

type BearerAuth struct {
	Tokens Verifier
}

func NewBearerAuth(v Verifier) *BearerAuth {
	return &BearerAuth{Tokens: v}
}

type ValidatorFunc func(id access.Identity) error

func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *BearerAuth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(id access.Identity) error {
		if !id.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *BearerAuth) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// identity may already be set by an outer group
		if id, ok := c.Get(ctxIdentity).(access.Identity); ok {
			if validator != nil {
				if err := validator(id); err != nil {
					return err
				}
			}
			return next(c)
		}

		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := m.Tokens.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}
		userID, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		id := access.Identity{
			UserID:  userID,
			IsAdmin: claims.IsAdmin,
			Name:    claims.Name,
			Email:   claims.Email,
		}
		if validator != nil {
			if err := validator(id); err != nil {
				return err
			}
		}

		setUserContext(c, id)
		return next(c)
	}
}

func setUserContext(c echo.Context, id access.Identity) {
	c.Set(ctxIdentity, id)

	ctx := access.IntoContext(c.Request().Context(), id)
	ctx = logging.IntoContext(ctx, logging.FromContext(ctx).With("user_id", id.UserID))
	c.SetRequest(c.Request().WithContext(ctx))
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// IdentityFrom returns the identity stored by RequireAuth or RequireAdmin.
func IdentityFrom(c echo.Context) (access.Identity, bool) {
	id, ok := c.Get(ctxIdentity).(access.Identity)
	return id, ok
}
