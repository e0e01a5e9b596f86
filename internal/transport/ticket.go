package transport

import "time"

type CreateTicketRequest struct {
	ServiceCenterID uint   `json:"caId"              validate:"required"`
	CustomerID      uint   `json:"clienteId"         validate:"required"`
	ModuleID        uint   `json:"moduloId"          validate:"required"`
	SubjectID       uint   `json:"assuntoId"         validate:"required"`
	TypeID          uint   `json:"tipoAtendimentoId" validate:"required"`
	Title           string `json:"titulo"            validate:"required,max=200"`
	Description     string `json:"descricao"         validate:"required"`
	UserID          *uint  `json:"usuarioId"`
}

type UpdateTicketRequest struct {
	Title       *string    `json:"titulo"      validate:"omitempty,max=200"`
	Description *string    `json:"descricao"`
	Solution    *string    `json:"solucao"`
	Notes       *string    `json:"observacoes"`
	UserID      *uint      `json:"usuarioId"`
	StatusID    *uint      `json:"statusId"`
	ModuleID    *uint      `json:"moduloId"`
	StartedAt   *time.Time `json:"dataInicio"`
	EndedAt     *time.Time `json:"dataFim"`
}

type TicketFilter struct {
	Search          string
	ServiceCenterID *uint
	CustomerID      *uint
	StatusID        *uint
	From            *time.Time
	To              *time.Time
	OwnerID         uint
}

type ServiceCenterBasic struct {
	ID    uint   `json:"id"`
	Code  string `json:"codigoCa"`
	Name  string `json:"nomeCa"`
	City  string `json:"cidade"`
	State string `json:"uf"`
}

type CustomerBasic struct {
	ID     uint   `json:"id"`
	Code   string `json:"codigoCliente"`
	Name   string `json:"nomeCliente"`
	Status string `json:"statusCliente"`
	Phone  string `json:"telefone"`
	Email  string `json:"email"`
}

type UserBasic struct {
	ID       uint   `json:"id"`
	Name     string `json:"nomeUsuario"`
	Email    string `json:"email"`
	JobTitle string `json:"cargo"`
}

type SubjectBasic struct {
	ID          uint   `json:"id"`
	Type        string `json:"tipoAssunto"`
	Description string `json:"descricao"`
}

type ModuleBasic struct {
	ID          uint   `json:"id"`
	Name        string `json:"nomeModulo"`
	Description string `json:"descricao"`
}

type TicketTypeBasic struct {
	ID       uint   `json:"id"`
	Name     string `json:"nome"`
	Priority int    `json:"prioridade"`
}

type StatusBasic struct {
	ID      uint   `json:"id"`
	Name    string `json:"nome"`
	IsFinal bool   `json:"isFinal"`
}

type TicketResponse struct {
	ID            uint               `json:"id"`
	Number        string             `json:"numeroTicket"`
	Title         string             `json:"titulo"`
	Description   string             `json:"descricao"`
	Solution      string             `json:"solucao"`
	StartedAt     time.Time          `json:"dataInicio"`
	EndedAt       *time.Time         `json:"dataFim"`
	Notes         string             `json:"observacoes"`
	ServiceCenter ServiceCenterBasic `json:"ca"`
	Customer      CustomerBasic      `json:"cliente"`
	User          UserBasic          `json:"usuario"`
	Subject       SubjectBasic       `json:"assunto"`
	Module        ModuleBasic        `json:"modulo"`
	Type          TicketTypeBasic    `json:"tipoAtendimento"`
	Status        StatusBasic        `json:"status"`
}

type TicketStatistics struct {
	Total      int64 `json:"totalAtendimentos"`
	Open       int64 `json:"abertos"`
	InProgress int64 `json:"emAndamento"`
	Resolved   int64 `json:"resolvidos"`
	Cancelled  int64 `json:"cancelados"`
}
