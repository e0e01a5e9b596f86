package service

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Skotchmaster/helpdesk/internal/access"
	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/repo"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
)

const (
	SettingSystemName     = "SISTEMA_NOME"
	SettingSystemVersion  = "SISTEMA_VERSAO"
	SettingTicketPrefix   = "TICKET_PREFIXO"
	SettingSessionTimeout = "SESSAO_TIMEOUT_MINUTOS"

	settingsCacheSize = 128

	msgSettingNotFound = "configuração não encontrada"
)

// PublicSettingKeys may be read without authentication.
var PublicSettingKeys = []string{
	SettingSystemName,
	SettingSystemVersion,
	SettingTicketPrefix,
	SettingSessionTimeout,
}

type SettingService struct {
	Repo  *repo.GormRepo
	cache *expirable.LRU[string, models.Setting]
}

func NewSettingService(r *repo.GormRepo, ttl time.Duration) *SettingService {
	return &SettingService{
		Repo:  r,
		cache: expirable.NewLRU[string, models.Setting](settingsCacheSize, nil, ttl),
	}
}

func NormalizeSettingKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

func IsPublicSetting(key string) bool {
	return slices.Contains(PublicSettingKeys, key)
}

func (s *SettingService) List(ctx context.Context) ([]models.Setting, error) {
	out, err := s.Repo.ListSettings(ctx)
	if out == nil {
		out = []models.Setting{}
	}
	return out, err
}

func (s *SettingService) load(ctx context.Context, key string) (*models.Setting, error) {
	if s.cache != nil {
		if st, ok := s.cache.Get(key); ok {
			return &st, nil
		}
	}
	st, err := s.Repo.GetSetting(ctx, key)
	if err != nil {
		return nil, lookup(err, msgSettingNotFound)
	}
	if s.cache != nil {
		s.cache.Add(key, *st)
	}
	return st, nil
}

// Get returns one value. Non-admins may only read the public keys.
func (s *SettingService) Get(ctx context.Context, caller access.Identity, key string) (*transport.SettingValue, error) {
	key = NormalizeSettingKey(key)
	if !caller.IsAdmin && !IsPublicSetting(key) {
		return nil, forbidden("configuração restrita a administradores")
	}
	st, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	return &transport.SettingValue{Key: st.Key, Value: st.Value}, nil
}

// Value returns the stored value of key, or def when it is missing or empty.
func (s *SettingService) Value(ctx context.Context, key, def string) string {
	st, err := s.load(ctx, NormalizeSettingKey(key))
	if err != nil || strings.TrimSpace(st.Value) == "" {
		return def
	}
	return st.Value
}

func (s *SettingService) Public(ctx context.Context) (map[string]string, error) {
	rows, err := s.Repo.GetSettings(ctx, PublicSettingKeys)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, st := range rows {
		out[st.Key] = st.Value
	}
	return out, nil
}

func validateSettingValue(typ, value string) (string, error) {
	switch typ {
	case models.SettingNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return "", validation("valor deve ser numérico")
		}
	case models.SettingBoolean:
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return "", validation("valor deve ser true ou false")
		}
		return v, nil
	}
	return value, nil
}

func (s *SettingService) Update(ctx context.Context, key, value string) error {
	key = NormalizeSettingKey(key)
	value = strings.TrimSpace(value)

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		st, err := tx.GetSetting(ctx, key)
		if err != nil {
			return lookup(err, msgSettingNotFound)
		}
		if !st.Editable {
			return validation("configuração não pode ser alterada")
		}
		if value == "" {
			return validation("valor é obrigatório")
		}
		v, err := validateSettingValue(st.Type, value)
		if err != nil {
			return err
		}
		return tx.UpdateSettingValue(ctx, key, v)
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Remove(key)
	}
	logging.FromContext(ctx).Info("setting_updated", "svc", "setting.update", "key", key)
	return nil
}

func (s *SettingService) SystemInfo(ctx context.Context) (*transport.SystemInfo, error) {
	now := nowUTC()
	total, err := s.Repo.CountActiveTicketsSince(ctx, time.Time{})
	if err != nil {
		return nil, err
	}
	today, err := s.Repo.CountActiveTicketsSince(ctx, startOfDay(now))
	if err != nil {
		return nil, err
	}
	users, err := s.Repo.CountActiveUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &transport.SystemInfo{
		SystemName: s.Value(ctx, SettingSystemName, "Sistema de Controle de Atendimento"),
		Version:    s.Value(ctx, SettingSystemVersion, "1.0.0"),
		ServerTime: now,
		Statistics: transport.SystemStatistics{
			TotalTickets: total,
			TicketsToday: today,
			ActiveUsers:  users,
		},
	}, nil
}
