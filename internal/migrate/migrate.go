package migrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/pkg/hash"
)

type Options struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

var statuses = []models.TicketStatus{
	{ID: models.StatusOpen, Name: "Aberto", Description: "Atendimento criado", Order: 1},
	{ID: models.StatusInProgress, Name: "Em Andamento", Description: "Atendimento sendo executado", Order: 2},
	{ID: models.StatusAwaitingCustomer, Name: "Aguardando Cliente", Description: "Aguardando resposta do cliente", Order: 3},
	{ID: models.StatusResolved, Name: "Resolvido", Description: "Atendimento resolvido", Order: 4, IsFinal: true},
	{ID: models.StatusCancelled, Name: "Cancelado", Description: "Atendimento cancelado", Order: 5, IsFinal: true},
}

var settings = []models.Setting{
	{Key: "SISTEMA_NOME", Value: "Sistema de Controle de Atendimento", Description: "Nome do sistema", Type: models.SettingString, Editable: true},
	{Key: "SISTEMA_VERSAO", Value: "1.0.0", Description: "Versão do sistema", Type: models.SettingString, Editable: true},
	{Key: "TICKET_PREFIXO", Value: "ATD", Description: "Prefixo para números de ticket", Type: models.SettingString, Editable: true},
	{Key: "SESSAO_TIMEOUT_MINUTOS", Value: "480", Description: "Timeout de sessão em minutos", Type: models.SettingNumber, Editable: true},
	{Key: "MAX_TENTATIVAS_LOGIN", Value: "5", Description: "Máximo de tentativas de login", Type: models.SettingNumber, Editable: false},
}

var modules = []models.Module{
	{Name: "Suporte Técnico", Description: "Módulo de suporte técnico"},
	{Name: "Comercial", Description: "Módulo comercial"},
	{Name: "Financeiro", Description: "Módulo financeiro"},
	{Name: "Administração", Description: "Módulo administrativo"},
}

var ticketTypes = []models.TicketType{
	{Name: "Suporte", Description: "Suporte técnico geral", Priority: models.PriorityNormal},
	{Name: "Instalação", Description: "Instalação de sistemas", Priority: models.PriorityNormal},
	{Name: "Manutenção", Description: "Manutenção preventiva/corretiva", Priority: models.PriorityLow},
	{Name: "Emergência", Description: "Atendimento de emergência", Priority: models.PriorityUrgent},
}

// subjects are keyed by module name.
var subjects = map[string][]models.Subject{
	"Suporte Técnico": {
		{Type: "Problemas de Sistema", Description: "Problemas gerais no sistema"},
		{Type: "Instalação de Software", Description: "Instalação e configuração de software"},
		{Type: "Manutenção Preventiva", Description: "Manutenção preventiva de sistemas"},
	},
	"Comercial": {
		{Type: "Negociação de Contrato", Description: "Negociação e renovação de contratos"},
		{Type: "Proposta Comercial", Description: "Elaboração de propostas comerciais"},
	},
	"Financeiro": {
		{Type: "Cobrança", Description: "Questões relacionadas a cobrança"},
		{Type: "Faturamento", Description: "Problemas de faturamento"},
	},
}

// Seed inserts the reference rows the ticket workflow relies on. Existing
// rows are left untouched so operators keep their edits across restarts.
func Seed(ctx context.Context, db *gorm.DB, opts Options) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range statuses {
			s := s
			if err := tx.Where(models.TicketStatus{ID: s.ID}).FirstOrCreate(&s).Error; err != nil {
				return fmt.Errorf("seed status %s: %w", s.Name, err)
			}
		}
		for _, s := range settings {
			s := s
			if err := tx.Where("chave = ?", s.Key).FirstOrCreate(&s).Error; err != nil {
				return fmt.Errorf("seed setting %s: %w", s.Key, err)
			}
		}
		for _, tt := range ticketTypes {
			tt := tt
			if err := tx.Where("nome = ?", tt.Name).FirstOrCreate(&tt).Error; err != nil {
				return fmt.Errorf("seed ticket type %s: %w", tt.Name, err)
			}
		}
		for _, m := range modules {
			m := m
			if err := tx.Where("nome_modulo = ?", m.Name).FirstOrCreate(&m).Error; err != nil {
				return fmt.Errorf("seed module %s: %w", m.Name, err)
			}
			for _, sub := range subjects[m.Name] {
				sub := sub
				sub.ModuleID = m.ID
				if err := tx.Where("modulo_id = ? AND tipo_assunto = ?", m.ID, sub.Type).FirstOrCreate(&sub).Error; err != nil {
					return fmt.Errorf("seed subject %s: %w", sub.Type, err)
				}
			}
		}
		return seedAdmin(tx, opts)
	})
}

func seedAdmin(tx *gorm.DB, opts Options) error {
	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		return nil
	}

	var admins int64
	if err := tx.Model(&models.User{}).Where("is_admin = ? AND is_active = ?", true, true).Count(&admins).Error; err != nil {
		return err
	}
	if admins > 0 {
		return nil
	}

	var existing models.User
	err := tx.Where("email = ?", opts.AdminEmail).First(&existing).Error
	if err == nil {
		slog.Warn("bootstrap_admin_skipped", "reason", "email already used by a non-admin account", "email", opts.AdminEmail)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	pwHash, err := hash.HashPassword(opts.AdminPassword)
	if err != nil {
		return err
	}
	name := opts.AdminName
	if name == "" {
		name = "Administrador"
	}
	admin := models.User{
		Name:         name,
		Email:        opts.AdminEmail,
		PasswordHash: pwHash,
		IsAdmin:      true,
		IsActive:     true,
	}
	if err := tx.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	slog.Info("bootstrap_admin_created", "email", admin.Email)
	return nil
}
