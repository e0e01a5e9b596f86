package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/helpdesk/internal/service"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
)

type ServiceCenterHTTP struct {
	Svc         *service.ServiceCenterService
	CustomerSvc *service.CustomerService
}

func (h *ServiceCenterHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ca.list")

	page, err := h.Svc.List(ctx, transport.ServiceCenterFilter{Search: c.QueryParam("search")}, pageRequest(c))
	if err != nil {
		return fail(l, "ca_list", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *ServiceCenterHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ca.get")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "ca_get", err)
	}
	ca, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "ca_get", err)
	}
	return c.JSON(http.StatusOK, ca)
}

func (h *ServiceCenterHTTP) GetByCode(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ca.get_by_code")

	ca, err := h.Svc.GetByCode(ctx, c.Param("codigo"))
	if err != nil {
		return fail(l, "ca_get", err)
	}
	return c.JSON(http.StatusOK, ca)
}

func (h *ServiceCenterHTTP) Customers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ca.customers")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "ca_customers", err)
	}
	if _, err := h.Svc.Get(ctx, id); err != nil {
		return fail(l, "ca_customers", err)
	}
	customers, err := h.CustomerSvc.ByServiceCenter(ctx, id)
	if err != nil {
		return fail(l, "ca_customers", err)
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *ServiceCenterHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ca.create")

	var req transport.ServiceCenterRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "ca_create", err)
	}
	ca, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "ca_create", err)
	}
	return c.JSON(http.StatusCreated, ca)
}

func (h *ServiceCenterHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ca.update")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "ca_update", err)
	}
	var req transport.ServiceCenterRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "ca_update", err)
	}
	ca, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "ca_update", err)
	}
	return c.JSON(http.StatusOK, ca)
}

func (h *ServiceCenterHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ca.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "ca_delete", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "ca_delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
