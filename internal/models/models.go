package models

import (
	"time"
)

type User struct {
	ID            uint       `gorm:"primaryKey;autoIncrement"                          json:"id"`
	Name          string     `gorm:"column:nome_usuario;size:100;not null"              json:"nomeUsuario"`
	Email         string     `gorm:"size:150;not null;uniqueIndex:ix_usuario_email"     json:"email"`
	PasswordHash  string     `gorm:"column:senha_hash;size:256;not null"                json:"-"`
	IsAdmin       bool       `gorm:"not null"                                           json:"isAdmin"`
	Phone         string     `gorm:"column:telefone;size:20"                            json:"telefone"`
	JobTitle      string     `gorm:"column:cargo;size:100"                              json:"cargo"`
	LastLoginAt   *time.Time `gorm:"column:ultimo_login"                                json:"ultimoLogin"`
	LoginAttempts int        `gorm:"column:tentativas_login;not null"                   json:"-"`
	IsActive      bool       `gorm:"not null;index:ix_usuario_ativo"                    json:"isActive"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (User) TableName() string { return "usuarios" }

// RefreshToken stores the SHA-256 digest of an opaque refresh token.
type RefreshToken struct {
	ID          uint       `gorm:"primaryKey"`
	TokenHash   string     `gorm:"column:token;size:64;not null;uniqueIndex:ix_refresh_token"`
	UserID      uint       `gorm:"column:usuario_id;not null;index:ix_refresh_token_user"`
	ExpiresAt   time.Time  `gorm:"column:expira_em;not null"`
	CreatedAt   time.Time  `gorm:"column:criado_em"`
	CreatedByIP string     `gorm:"column:criado_por_ip;size:45"`
	RevokedAt   *time.Time `gorm:"column:revogado_em"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

func (t RefreshToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

type ServiceCenter struct {
	ID        uint      `gorm:"primaryKey"                                  json:"id"`
	Code      string    `gorm:"column:codigo_ca;size:10;not null;uniqueIndex:ix_ca_codigo" json:"codigoCa"`
	Name      string    `gorm:"column:nome_ca;size:100;not null;index:ix_ca_nome"          json:"nomeCa"`
	City      string    `gorm:"column:cidade;size:100"                      json:"cidade"`
	State     string    `gorm:"column:uf;size:2"                            json:"uf"`
	Phone     string    `gorm:"column:telefone;size:20"                     json:"telefone"`
	Email     string    `gorm:"size:150"                                    json:"email"`
	Manager   string    `gorm:"column:responsavel;size:100"                 json:"responsavel"`
	IsActive  bool      `gorm:"not null;index:ix_ca_ativo"                  json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ServiceCenter) TableName() string { return "cas" }

const (
	CustomerActive    = "ATIVO"
	CustomerInactive  = "INATIVO"
	CustomerSuspended = "SUSPENSO"
)

var CustomerStatuses = []string{CustomerActive, CustomerInactive, CustomerSuspended}

type Customer struct {
	ID              uint      `gorm:"primaryKey"                                                             json:"id"`
	ServiceCenterID uint      `gorm:"column:ca_id;not null;uniqueIndex:ix_cliente_ca_codigo,priority:1"      json:"caId"`
	Code            string    `gorm:"column:codigo_cliente;size:15;not null;uniqueIndex:ix_cliente_ca_codigo,priority:2" json:"codigoCliente"`
	Name            string    `gorm:"column:nome_cliente;size:200;not null;index:ix_cliente_nome"            json:"nomeCliente"`
	CompanyName     string    `gorm:"column:razao_social;size:200"                                           json:"razaoSocial"`
	TaxID           string    `gorm:"column:cnpj_cpf;size:18"                                                json:"cnpjCpf"`
	City            string    `gorm:"column:cidade;size:100"                                                 json:"cidade"`
	State           string    `gorm:"column:uf;size:2"                                                       json:"uf"`
	Phone           string    `gorm:"column:telefone;size:20"                                                json:"telefone"`
	Email           string    `gorm:"size:150"                                                               json:"email"`
	Manager         string    `gorm:"column:responsavel;size:100"                                            json:"responsavel"`
	Status          string    `gorm:"column:status_cliente;size:20;not null"                                 json:"statusCliente"`
	IsActive        bool      `gorm:"not null;index:ix_cliente_ativo"                                        json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Customer) TableName() string { return "clientes" }

type Module struct {
	ID          uint   `gorm:"primaryKey"                                                  json:"id"`
	Name        string `gorm:"column:nome_modulo;size:100;not null;uniqueIndex:ix_modulo_nome" json:"nomeModulo"`
	Description string `gorm:"column:descricao;size:500"                                   json:"descricao"`
}

func (Module) TableName() string { return "modulos" }

type Subject struct {
	ID          uint   `gorm:"primaryKey"                                                                 json:"id"`
	ModuleID    uint   `gorm:"column:modulo_id;not null;uniqueIndex:ix_assunto_modulo_tipo,priority:1"    json:"moduloId"`
	Type        string `gorm:"column:tipo_assunto;size:100;not null;uniqueIndex:ix_assunto_modulo_tipo,priority:2" json:"tipoAssunto"`
	Description string `gorm:"column:descricao;size:500"                                                  json:"descricao"`
}

func (Subject) TableName() string { return "assuntos" }

const (
	PriorityLow    = 1
	PriorityNormal = 2
	PriorityHigh   = 3
	PriorityUrgent = 4
)

var PriorityLabels = map[int]string{
	PriorityLow:    "Baixa",
	PriorityNormal: "Normal",
	PriorityHigh:   "Alta",
	PriorityUrgent: "Urgente",
}

type TicketType struct {
	ID          uint   `gorm:"primaryKey"                                                     json:"id"`
	Name        string `gorm:"column:nome;size:100;not null;uniqueIndex:ix_tipo_atendimento_nome" json:"nome"`
	Description string `gorm:"column:descricao;size:500"                                      json:"descricao"`
	Priority    int    `gorm:"column:prioridade;not null"                                     json:"prioridade"`
}

func (TicketType) TableName() string { return "tipos_atendimento" }

const (
	StatusOpen             uint = 1
	StatusInProgress       uint = 2
	StatusAwaitingCustomer uint = 3
	StatusResolved         uint = 4
	StatusCancelled        uint = 5
)

type TicketStatus struct {
	ID          uint   `gorm:"primaryKey"                             json:"id"`
	Name        string `gorm:"column:nome;size:50;not null"           json:"nome"`
	Description string `gorm:"column:descricao;size:200"              json:"descricao"`
	Order       int    `gorm:"column:ordem;not null;index:ix_status_ordem" json:"ordem"`
	IsFinal     bool   `gorm:"column:is_final;not null"               json:"isFinal"`
}

func (TicketStatus) TableName() string { return "status_atendimentos" }

type Ticket struct {
	ID              uint       `gorm:"primaryKey"                                                    json:"id"`
	Number          string     `gorm:"column:numero_ticket;size:20;not null;uniqueIndex:ix_atendimento_numero" json:"numeroTicket"`
	ServiceCenterID uint       `gorm:"column:ca_id;not null;index:ix_atendimento_ca"                 json:"caId"`
	CustomerID      uint       `gorm:"column:cliente_id;not null;index:ix_atendimento_cliente"       json:"clienteId"`
	UserID          uint       `gorm:"column:usuario_id;not null;index:ix_atendimento_usuario"       json:"usuarioId"`
	SubjectID       uint       `gorm:"column:assunto_id;not null"                                    json:"assuntoId"`
	TypeID          uint       `gorm:"column:tipo_atendimento_id;not null"                           json:"tipoAtendimentoId"`
	ModuleID        uint       `gorm:"column:modulo_id;not null"                                     json:"moduloId"`
	StatusID        uint       `gorm:"column:status_id;not null;index:ix_atendimento_status"         json:"statusId"`
	Title           string     `gorm:"column:titulo;size:200;not null"                               json:"titulo"`
	Description     string     `gorm:"column:descricao;type:text;not null"                           json:"descricao"`
	Solution        string     `gorm:"column:solucao;type:text"                                      json:"solucao"`
	StartedAt       time.Time  `gorm:"column:data_inicio;not null;index:ix_atendimento_data_inicio"  json:"dataInicio"`
	EndedAt         *time.Time `gorm:"column:data_fim"                                               json:"dataFim"`
	Notes           string     `gorm:"column:observacoes;type:text"                                  json:"observacoes"`
	IsActive        bool       `gorm:"not null"                                                      json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (Ticket) TableName() string { return "atendimento" }

type Suggestion struct {
	ID              uint      `gorm:"primaryKey"                                      json:"id"`
	Title           string    `gorm:"column:titulo;size:200;not null"                 json:"titulo"`
	Content         string    `gorm:"column:conteudo;type:text;not null"              json:"conteudo"`
	IsRead          bool      `gorm:"column:is_read;not null;index:ix_sugestao_lida"  json:"isRead"`
	UserID          uint      `gorm:"column:usuario_id;not null;index:ix_sugestao_usuario" json:"usuarioId"`
	CustomerID      *uint     `gorm:"column:cliente_id;index:ix_sugestao_cliente"     json:"clienteId"`
	ServiceCenterID *uint     `gorm:"column:ca_id;index:ix_sugestao_ca"               json:"caId"`
	CreatedAt       time.Time `gorm:"index:ix_sugestao_created_at"                    json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Suggestion) TableName() string { return "sugestoes" }

const (
	SettingString  = "STRING"
	SettingNumber  = "NUMBER"
	SettingBoolean = "BOOLEAN"
)

type Setting struct {
	ID          uint   `gorm:"primaryKey"                                               json:"id"`
	Key         string `gorm:"column:chave;size:100;not null;uniqueIndex:ix_configuracao_chave" json:"chave"`
	Value       string `gorm:"column:valor;not null"                                    json:"valor"`
	Description string `gorm:"column:descricao;size:500"                                json:"descricao"`
	Type        string `gorm:"column:tipo;size:50;not null"                             json:"tipo"`
	Editable    bool   `gorm:"column:editavel;not null"                                 json:"editavel"`
}

func (Setting) TableName() string { return "configuracoes" }

// All lists every table for AutoMigrate.
func All() []any {
	return []any{
		&User{}, &RefreshToken{}, &ServiceCenter{}, &Customer{}, &Module{}, &Subject{},
		&TicketType{}, &TicketStatus{}, &Ticket{}, &Suggestion{}, &Setting{},
	}
}
