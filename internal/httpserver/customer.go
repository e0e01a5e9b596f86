package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/helpdesk/internal/service"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
)

type CustomerHTTP struct {
	Svc *service.CustomerService
}

func (h *CustomerHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.list")

	f := transport.CustomerFilter{
		Search:          c.QueryParam("search"),
		ServiceCenterID: util.ParseOptionalUint(c.QueryParam("caId")),
		Status:          c.QueryParam("status"),
	}
	page, err := h.Svc.List(ctx, f, pageRequest(c))
	if err != nil {
		return fail(l, "customer_list", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *CustomerHTTP) Statuses(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Svc.Statuses())
}

func (h *CustomerHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.get")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "customer_get", err)
	}
	cust, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "customer_get", err)
	}
	return c.JSON(http.StatusOK, cust)
}

func (h *CustomerHTTP) GetByCode(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.get_by_code")

	caID, err := parseID(c, "caId")
	if err != nil {
		return fail(l, "customer_get", err)
	}
	cust, err := h.Svc.GetByCode(ctx, caID, c.Param("codigo"))
	if err != nil {
		return fail(l, "customer_get", err)
	}
	return c.JSON(http.StatusOK, cust)
}

func (h *CustomerHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.create")

	var req transport.CustomerRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "customer_create", err)
	}
	cust, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "customer_create", err)
	}
	return c.JSON(http.StatusCreated, cust)
}

func (h *CustomerHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.update")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "customer_update", err)
	}
	var req transport.CustomerRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "customer_update", err)
	}
	cust, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "customer_update", err)
	}
	return c.JSON(http.StatusOK, cust)
}

func (h *CustomerHTTP) ChangeStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.change_status")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "customer_status", err)
	}
	status, err := bindScalar(c, "status")
	if err != nil {
		return fail(l, "customer_status", err)
	}
	if err := h.Svc.ChangeStatus(ctx, identity(c), id, status); err != nil {
		return fail(l, "customer_status", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CustomerHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "customer_delete", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "customer_delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
