package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/helpdesk/internal/service"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
)

type SettingHTTP struct {
	Svc *service.SettingService
}

func (h *SettingHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "setting.list")

	out, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "setting_list", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SettingHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "setting.get")

	out, err := h.Svc.Get(ctx, identity(c), c.Param("chave"))
	if err != nil {
		return fail(l, "setting_get", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SettingHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "setting.update")

	value, err := bindScalar(c, "valor")
	if err != nil {
		return fail(l, "setting_update", err)
	}
	if err := h.Svc.Update(ctx, c.Param("chave"), value); err != nil {
		return fail(l, "setting_update", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SettingHTTP) Public(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "setting.public")

	out, err := h.Svc.Public(ctx)
	if err != nil {
		return fail(l, "setting_public", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SettingHTTP) SystemInfo(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "setting.system_info")

	out, err := h.Svc.SystemInfo(ctx)
	if err != nil {
		return fail(l, "system_info", err)
	}
	return c.JSON(http.StatusOK, out)
}
