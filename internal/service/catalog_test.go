package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
)

func TestModuleService_DeleteGuards(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	modules := &ModuleService{Repo: r}
	subjects := &SubjectService{Repo: r}
	ctx := context.Background()

	mod, err := modules.Create(ctx, transport.ModuleRequest{Name: "Estoque"})
	require.NoError(t, err)
	subj, err := subjects.Create(ctx, transport.SubjectRequest{Type: "Inventário", ModuleID: mod.ID})
	require.NoError(t, err)
	assert.Equal(t, "Estoque", subj.ModuleName)

	err = modules.Delete(ctx, mod.ID)
	require.ErrorIs(t, err, ErrInUse)

	require.NoError(t, subjects.Delete(ctx, subj.ID))
	require.NoError(t, modules.Delete(ctx, mod.ID))
	require.ErrorIs(t, modules.Delete(ctx, mod.ID), ErrNotFound)
}

func TestModuleService_DeleteBlockedByTickets(t *testing.T) {
	t.Parallel()

	f := newTicketFixture(t)
	ctx := context.Background()
	modules := &ModuleService{Repo: f.r}

	mod, err := modules.Create(ctx, transport.ModuleRequest{Name: "Sem assuntos"})
	require.NoError(t, err)

	req := f.request("Atendimento no módulo novo")
	req.ModuleID = mod.ID
	_, err = f.svc.Create(ctx, identityOf(f.ana), req)
	require.NoError(t, err)

	require.ErrorIs(t, modules.Delete(ctx, mod.ID), ErrInUse)

	stats, err := modules.Statistics(ctx, mod.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalTickets)
	assert.Zero(t, stats.TotalSubjects)
}

func TestModuleService_DeleteBlockedBySoftDeletedTickets(t *testing.T) {
	t.Parallel()

	f := newTicketFixture(t)
	ctx := context.Background()
	modules := &ModuleService{Repo: f.r}

	mod, err := modules.Create(ctx, transport.ModuleRequest{Name: "Histórico"})
	require.NoError(t, err)

	req := f.request("Atendimento encerrado")
	req.ModuleID = mod.ID
	ticket, err := f.svc.Create(ctx, identityOf(f.ana), req)
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, identityOf(f.ana), ticket.ID))

	require.ErrorIs(t, modules.Delete(ctx, mod.ID), ErrInUse)

	stats, err := modules.Statistics(ctx, mod.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalTickets)
}

func TestModuleService_NameIsUnique(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &ModuleService{Repo: r}
	ctx := context.Background()

	_, err := svc.Create(ctx, transport.ModuleRequest{Name: "Comercial"})
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(ctx, transport.ModuleRequest{Name: "   "})
	require.ErrorIs(t, err, ErrValidation)

	page, err := svc.List(ctx, "Finan", util.NormalizePage(1, 20))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Financeiro", page.Items[0].Name)
	assert.EqualValues(t, 2, page.Items[0].TotalSubjects)
}

func TestSubjectService_Create(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &SubjectService{Repo: r}
	refs := seededRefs(t, r)
	ctx := context.Background()

	_, err := svc.Create(ctx, transport.SubjectRequest{Type: "Novo", ModuleID: 9999})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(ctx, transport.SubjectRequest{Type: refs.Subject.Type, ModuleID: refs.Module.ID})
	require.ErrorIs(t, err, ErrConflict)

	list, err := (&ModuleService{Repo: r}).Subjects(ctx, refs.Module.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestTicketTypeService(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &TicketTypeService{Repo: r}
	ctx := context.Background()

	prios := svc.Priorities()
	require.Len(t, prios, 4)
	assert.Equal(t, transport.PriorityOption{Value: models.PriorityUrgent, Label: "Urgente"}, prios[3])

	_, err := svc.Create(ctx, transport.TicketTypeRequest{Name: "Consultoria", Priority: 5})
	require.ErrorIs(t, err, ErrValidation)

	tt, err := svc.Create(ctx, transport.TicketTypeRequest{Name: "Consultoria", Priority: models.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, "Alta", tt.PriorityLabel)

	_, err = svc.Create(ctx, transport.TicketTypeRequest{Name: "Consultoria", Priority: models.PriorityLow})
	require.ErrorIs(t, err, ErrConflict)

	page, err := svc.List(ctx, transport.TicketTypeFilter{}, util.NormalizePage(1, 20))
	require.NoError(t, err)
	require.NotEmpty(t, page.Items)
	assert.Equal(t, models.PriorityUrgent, page.Items[0].Priority)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Len(t, stats, 5)

	require.NoError(t, svc.Delete(ctx, tt.ID))
	_, err = svc.Get(ctx, tt.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStatusService_ListIsOrdered(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	list, err := (&StatusService{Repo: r}).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, models.StatusOpen, list[0].ID)
	assert.True(t, list[4].IsFinal)
}
