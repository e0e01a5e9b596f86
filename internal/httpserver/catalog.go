package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/helpdesk/internal/service"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
)

type ModuleHTTP struct {
	Svc *service.ModuleService
}

func (h *ModuleHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "module.list")

	page, err := h.Svc.List(ctx, c.QueryParam("search"), pageRequest(c))
	if err != nil {
		return fail(l, "module_list", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *ModuleHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "module.get")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "module_get", err)
	}
	mod, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "module_get", err)
	}
	return c.JSON(http.StatusOK, mod)
}

func (h *ModuleHTTP) Subjects(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "module.subjects")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "module_subjects", err)
	}
	out, err := h.Svc.Subjects(ctx, id)
	if err != nil {
		return fail(l, "module_subjects", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ModuleHTTP) Statistics(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "module.statistics")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "module_statistics", err)
	}
	stats, err := h.Svc.Statistics(ctx, id)
	if err != nil {
		return fail(l, "module_statistics", err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *ModuleHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "module.create")

	var req transport.ModuleRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "module_create", err)
	}
	mod, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "module_create", err)
	}
	return c.JSON(http.StatusCreated, mod)
}

func (h *ModuleHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "module.update")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "module_update", err)
	}
	var req transport.ModuleRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "module_update", err)
	}
	mod, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "module_update", err)
	}
	return c.JSON(http.StatusOK, mod)
}

func (h *ModuleHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "module.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "module_delete", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "module_delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

type SubjectHTTP struct {
	Svc *service.SubjectService
}

func (h *SubjectHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subject.list")

	f := transport.SubjectFilter{
		Search:   c.QueryParam("search"),
		ModuleID: util.ParseOptionalUint(c.QueryParam("moduloId")),
	}
	page, err := h.Svc.List(ctx, f, pageRequest(c))
	if err != nil {
		return fail(l, "subject_list", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *SubjectHTTP) ByModule(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subject.by_module")

	id, err := parseID(c, "moduloId")
	if err != nil {
		return fail(l, "subject_by_module", err)
	}
	out, err := h.Svc.ByModule(ctx, id)
	if err != nil {
		return fail(l, "subject_by_module", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SubjectHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subject.get")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "subject_get", err)
	}
	subj, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "subject_get", err)
	}
	return c.JSON(http.StatusOK, subj)
}

func (h *SubjectHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subject.create")

	var req transport.SubjectRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "subject_create", err)
	}
	subj, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "subject_create", err)
	}
	return c.JSON(http.StatusCreated, subj)
}

func (h *SubjectHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subject.update")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "subject_update", err)
	}
	var req transport.SubjectRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "subject_update", err)
	}
	subj, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "subject_update", err)
	}
	return c.JSON(http.StatusOK, subj)
}

func (h *SubjectHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subject.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "subject_delete", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "subject_delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

type TicketTypeHTTP struct {
	Svc *service.TicketTypeService
}

func (h *TicketTypeHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ticket_type.list")

	f := transport.TicketTypeFilter{
		Search:   c.QueryParam("search"),
		Priority: util.ParseOptionalInt(c.QueryParam("prioridade")),
	}
	page, err := h.Svc.List(ctx, f, pageRequest(c))
	if err != nil {
		return fail(l, "ticket_type_list", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *TicketTypeHTTP) Priorities(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Svc.Priorities())
}

func (h *TicketTypeHTTP) Statistics(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ticket_type.statistics")

	stats, err := h.Svc.Statistics(ctx)
	if err != nil {
		return fail(l, "ticket_type_statistics", err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *TicketTypeHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ticket_type.get")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "ticket_type_get", err)
	}
	t, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "ticket_type_get", err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TicketTypeHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ticket_type.create")

	var req transport.TicketTypeRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "ticket_type_create", err)
	}
	t, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "ticket_type_create", err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *TicketTypeHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ticket_type.update")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "ticket_type_update", err)
	}
	var req transport.TicketTypeRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "ticket_type_update", err)
	}
	t, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "ticket_type_update", err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TicketTypeHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ticket_type.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "ticket_type_delete", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "ticket_type_delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

type StatusHTTP struct {
	Svc *service.StatusService
}

func (h *StatusHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "status.list")

	out, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "status_list", err)
	}
	return c.JSON(http.StatusOK, out)
}
