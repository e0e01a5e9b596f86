package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/helpdesk/internal/service"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
)

type UserHTTP struct {
	Auth  *service.AuthService
	Users *service.UserService
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "login", err)
	}

	res, err := h.Auth.Login(ctx, req.Email, req.Password, c.RealIP())
	if err != nil {
		return fail(l, "login", err)
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{
		Token:        res.AccessToken,
		RefreshToken: res.RefreshToken,
		User:         transport.NewUserResponse(res.User),
	})
}

func (h *UserHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.refresh")

	var req transport.RefreshRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "refresh", err)
	}

	pair, err := h.Auth.Refresh(ctx, req.RefreshToken, c.RealIP())
	if err != nil {
		return fail(l, "refresh", err)
	}
	return c.JSON(http.StatusOK, transport.RefreshResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *UserHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.logout")

	n, err := h.Auth.Logout(ctx, identity(c).UserID)
	if err != nil {
		return fail(l, "logout", err)
	}
	return c.JSON(http.StatusOK, transport.LogoutResponse{
		Message:       "logout realizado com sucesso",
		RevokedTokens: n,
	})
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	f := transport.UserFilter{
		Search:   c.QueryParam("search"),
		IsAdmin:  util.ParseOptionalBool(c.QueryParam("isAdmin")),
		IsActive: util.ParseOptionalBool(c.QueryParam("isActive")),
	}
	page, err := h.Users.List(ctx, f, pageRequest(c))
	if err != nil {
		return fail(l, "user_list", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *UserHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.me")

	user, err := h.Users.Get(ctx, identity(c).UserID)
	if err != nil {
		return fail(l, "user_me", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "user_get", err)
	}
	user, err := h.Users.Get(ctx, id)
	if err != nil {
		return fail(l, "user_get", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create")

	var req transport.CreateUserRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "user_create", err)
	}
	user, err := h.Users.Create(ctx, req)
	if err != nil {
		return fail(l, "user_create", err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "user_update", err)
	}
	var req transport.UpdateUserRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "user_update", err)
	}
	if err := h.Users.Update(ctx, identity(c), id, req); err != nil {
		return fail(l, "user_update", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.change_password")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "change_password", err)
	}
	password, err := bindScalar(c, "novaSenha")
	if err != nil {
		return fail(l, "change_password", err)
	}
	if err := h.Users.ChangePassword(ctx, identity(c), id, password); err != nil {
		return fail(l, "change_password", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHTTP) Reactivate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.reactivate")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "user_reactivate", err)
	}
	if err := h.Users.Reactivate(ctx, id); err != nil {
		return fail(l, "user_reactivate", err)
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "usuário reativado com sucesso"})
}

func (h *UserHTTP) Deactivate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.deactivate")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "user_deactivate", err)
	}
	if err := h.Users.Deactivate(ctx, identity(c), id); err != nil {
		return fail(l, "user_deactivate", err)
	}
	l.Info("user_deactivated", "target_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "usuário desativado com sucesso"})
}
