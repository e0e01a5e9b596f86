package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/helpdesk/internal/service"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
)

type SuggestionHTTP struct {
	Svc *service.SuggestionService
}

func (h *SuggestionHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "suggestion.list")

	f := transport.SuggestionFilter{
		Search:          c.QueryParam("search"),
		IsRead:          util.ParseOptionalBool(c.QueryParam("isRead")),
		CustomerID:      util.ParseOptionalUint(c.QueryParam("clienteId")),
		ServiceCenterID: util.ParseOptionalUint(c.QueryParam("caId")),
	}
	page, err := h.Svc.List(ctx, identity(c), f, pageRequest(c))
	if err != nil {
		return fail(l, "suggestion_list", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *SuggestionHTTP) Statistics(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "suggestion.statistics")

	stats, err := h.Svc.Statistics(ctx)
	if err != nil {
		return fail(l, "suggestion_statistics", err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *SuggestionHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "suggestion.get")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "suggestion_get", err)
	}
	sug, err := h.Svc.Get(ctx, identity(c), id)
	if err != nil {
		return fail(l, "suggestion_get", err)
	}
	return c.JSON(http.StatusOK, sug)
}

func (h *SuggestionHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "suggestion.create")

	var req transport.CreateSuggestionRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "suggestion_create", err)
	}
	sug, err := h.Svc.Create(ctx, identity(c), req)
	if err != nil {
		return fail(l, "suggestion_create", err)
	}
	return c.JSON(http.StatusCreated, sug)
}

func (h *SuggestionHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "suggestion.update")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "suggestion_update", err)
	}
	var req transport.UpdateSuggestionRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "suggestion_update", err)
	}
	sug, err := h.Svc.Update(ctx, identity(c), id, req)
	if err != nil {
		return fail(l, "suggestion_update", err)
	}
	return c.JSON(http.StatusOK, sug)
}

func (h *SuggestionHTTP) MarkRead(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "suggestion.mark_read")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "suggestion_read", err)
	}
	read, err := bindOptionalBool(c, "isRead", true)
	if err != nil {
		return fail(l, "suggestion_read", err)
	}
	if err := h.Svc.MarkRead(ctx, id, read); err != nil {
		return fail(l, "suggestion_read", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SuggestionHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "suggestion.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "suggestion_delete", err)
	}
	if err := h.Svc.Delete(ctx, identity(c), id); err != nil {
		return fail(l, "suggestion_delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
