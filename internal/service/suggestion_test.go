package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
)

func TestSuggestionService_Lifecycle(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &SuggestionService{Repo: r}
	ctx := context.Background()
	admin := createUser(t, r, "admin@example.com", "senha-segura", true)
	ana := createUser(t, r, "ana@example.com", "senha-segura", false)
	bob := createUser(t, r, "bob@example.com", "senha-segura", false)
	ca := createServiceCenter(t, r, "0099")

	_, err := svc.Create(ctx, identityOf(ana), transport.CreateSuggestionRequest{Title: "x", Content: "y", CustomerID: ptr(uint(999))})
	require.ErrorIs(t, err, ErrNotFound)

	sug, err := svc.Create(ctx, identityOf(ana), transport.CreateSuggestionRequest{
		Title:           "Relatório mensal",
		Content:         "Exportar em PDF",
		ServiceCenterID: &ca.ID,
		CustomerID:      ptr(uint(0)),
	})
	require.NoError(t, err)
	assert.False(t, sug.IsRead)
	assert.Nil(t, sug.CustomerID)

	_, err = svc.Get(ctx, identityOf(bob), sug.ID)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Update(ctx, identityOf(bob), sug.ID, transport.UpdateSuggestionRequest{Title: ptr("z")})
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, identityOf(ana), sug.ID, transport.UpdateSuggestionRequest{Title: ptr("Relatório anual")})
	require.NoError(t, err)
	assert.Equal(t, "Relatório anual", updated.Title)

	require.NoError(t, svc.MarkRead(ctx, sug.ID, true))
	require.ErrorIs(t, svc.MarkRead(ctx, 999, true), ErrNotFound)

	require.NoError(t, svc.MarkRead(ctx, sug.ID, false))
	got, err := svc.Get(ctx, identityOf(ana), sug.ID)
	require.NoError(t, err)
	assert.False(t, got.IsRead)
	require.NoError(t, svc.MarkRead(ctx, sug.ID, true))

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Total)
	assert.EqualValues(t, 1, stats.Read)
	assert.EqualValues(t, 0, stats.Unread)
	assert.EqualValues(t, 1, stats.Authors)

	page, err := svc.List(ctx, identityOf(bob), transport.SuggestionFilter{}, util.NormalizePage(1, 20))
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	page, err = svc.List(ctx, identityOf(admin), transport.SuggestionFilter{}, util.NormalizePage(1, 20))
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	require.ErrorIs(t, svc.Delete(ctx, identityOf(bob), sug.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, identityOf(admin), sug.ID))
	_, err = svc.Get(ctx, identityOf(ana), sug.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
