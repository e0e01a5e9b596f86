package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/helpdesk/internal/access"
	"github.com/Skotchmaster/helpdesk/internal/models"
)

func TestSettingService_UpdateRules(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := NewSettingService(r, time.Minute)
	ctx := context.Background()
	require.NoError(t, r.DB.Create(&models.Setting{
		Key: "NOTIFICAR_EMAIL", Value: "false", Type: models.SettingBoolean, Editable: true,
	}).Error)

	tests := []struct {
		name  string
		key   string
		value string
		want  error
	}{
		{name: "unknown key", key: "NAO_EXISTE", value: "1", want: ErrNotFound},
		{name: "read only", key: "MAX_TENTATIVAS_LOGIN", value: "10", want: ErrValidation},
		{name: "empty value", key: SettingSystemName, value: "  ", want: ErrValidation},
		{name: "number rejects text", key: SettingSessionTimeout, value: "muito", want: ErrValidation},
		{name: "boolean rejects text", key: "NOTIFICAR_EMAIL", value: "sim", want: ErrValidation},
		{name: "number", key: SettingSessionTimeout, value: "60", want: nil},
		{name: "lowercase key", key: "sistema_versao", value: "2.0.0", want: nil},
	}

	for _, tt := range tests {
		err := svc.Update(ctx, tt.key, tt.value)
		if tt.want == nil {
			assert.NoError(t, err, tt.name)
		} else {
			assert.ErrorIs(t, err, tt.want, tt.name)
		}
	}

	require.NoError(t, svc.Update(ctx, "NOTIFICAR_EMAIL", "TRUE"))
	st, err := r.GetSetting(ctx, "NOTIFICAR_EMAIL")
	require.NoError(t, err)
	assert.Equal(t, "true", st.Value)

	assert.Equal(t, "2.0.0", svc.Value(ctx, SettingSystemVersion, ""))
}

func TestSettingService_CacheIsInvalidatedOnUpdate(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := NewSettingService(r, time.Hour)
	ctx := context.Background()
	admin := access.Identity{UserID: 1, IsAdmin: true}

	got, err := svc.Get(ctx, admin, SettingSystemName)
	require.NoError(t, err)
	original := got.Value

	// writes that bypass the service are not seen until the entry expires
	require.NoError(t, r.UpdateSettingValue(ctx, SettingSystemName, "Fora do cache"))
	got, err = svc.Get(ctx, admin, SettingSystemName)
	require.NoError(t, err)
	assert.Equal(t, original, got.Value)

	require.NoError(t, svc.Update(ctx, SettingSystemName, "Central de Atendimento"))
	got, err = svc.Get(ctx, admin, SettingSystemName)
	require.NoError(t, err)
	assert.Equal(t, "Central de Atendimento", got.Value)
}

func TestSettingService_PublicKeys(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := NewSettingService(r, time.Minute)
	ctx := context.Background()
	user := access.Identity{UserID: 2}

	_, err := svc.Get(ctx, user, "MAX_TENTATIVAS_LOGIN")
	require.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(ctx, user, "ticket_prefixo")
	require.NoError(t, err)
	assert.Equal(t, SettingTicketPrefix, got.Key)
	assert.Equal(t, DefaultTicketPrefix, got.Value)

	pub, err := svc.Public(ctx)
	require.NoError(t, err)
	assert.Len(t, pub, len(PublicSettingKeys))
	assert.NotContains(t, pub, "MAX_TENTATIVAS_LOGIN")

	assert.Equal(t, "fallback", svc.Value(ctx, "NAO_EXISTE", "fallback"))
}

func TestSettingService_SystemInfo(t *testing.T) {
	t.Parallel()

	f := newTicketFixture(t)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, identityOf(f.ana), f.request("Hoje"))
	require.NoError(t, err)

	info, err := f.settings.SystemInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sistema de Controle de Atendimento", info.SystemName)
	assert.EqualValues(t, 1, info.Statistics.TotalTickets)
	assert.EqualValues(t, 1, info.Statistics.TicketsToday)
	assert.EqualValues(t, 3, info.Statistics.ActiveUsers)
}
