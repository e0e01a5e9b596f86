package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/helpdesk/internal/service"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
)

type TicketHTTP struct {
	Svc *service.TicketService
}

func (h *TicketHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ticket.list")

	f := transport.TicketFilter{
		Search:          c.QueryParam("search"),
		ServiceCenterID: util.ParseOptionalUint(c.QueryParam("caId")),
		CustomerID:      util.ParseOptionalUint(c.QueryParam("clienteId")),
		StatusID:        util.ParseOptionalUint(c.QueryParam("statusId")),
		From:            util.ParseOptionalTime(c.QueryParam("dataInicio")),
		To:              util.ParseOptionalEndTime(c.QueryParam("dataFim")),
	}
	page, err := h.Svc.List(ctx, identity(c), f, pageRequest(c))
	if err != nil {
		return fail(l, "ticket_list", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *TicketHTTP) Statistics(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ticket.statistics")

	stats, err := h.Svc.Statistics(ctx, identity(c))
	if err != nil {
		return fail(l, "ticket_statistics", err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *TicketHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ticket.get")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "ticket_get", err)
	}
	t, err := h.Svc.Get(ctx, identity(c), id)
	if err != nil {
		return fail(l, "ticket_get", err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TicketHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ticket.create")

	var req transport.CreateTicketRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "ticket_create", err)
	}
	t, err := h.Svc.Create(ctx, identity(c), req)
	if err != nil {
		return fail(l, "ticket_create", err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *TicketHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ticket.update")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "ticket_update", err)
	}
	var req transport.UpdateTicketRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "ticket_update", err)
	}
	if err := h.Svc.Update(ctx, identity(c), id, req); err != nil {
		return fail(l, "ticket_update", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TicketHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ticket.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "ticket_delete", err)
	}
	if err := h.Svc.Delete(ctx, identity(c), id); err != nil {
		return fail(l, "ticket_delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
