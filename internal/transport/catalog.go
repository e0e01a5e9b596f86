package transport

type ModuleRequest struct {
	Name        string `json:"nomeModulo" validate:"required,max=100"`
	Description string `json:"descricao"  validate:"max=500"`
}

type ModuleResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"nomeModulo"`
	Description   string `json:"descricao"`
	TotalSubjects int64  `json:"totalAssuntos"`
}

type StatusCount struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

type ModuleStatistics struct {
	ModuleID        uint          `json:"moduloId"`
	ModuleName      string        `json:"nomeModulo"`
	TotalSubjects   int64         `json:"totalAssuntos"`
	TotalTickets    int64         `json:"totalAtendimentos"`
	TicketsByStatus []StatusCount `json:"atendimentosPorStatus"`
}

type SubjectRequest struct {
	Type        string `json:"tipoAssunto" validate:"required,max=100"`
	ModuleID    uint   `json:"moduloId"    validate:"required"`
	Description string `json:"descricao"   validate:"max=500"`
}

type SubjectFilter struct {
	Search   string
	ModuleID *uint
}

type SubjectResponse struct {
	ID          uint   `json:"id"`
	Type        string `json:"tipoAssunto"`
	ModuleID    uint   `json:"moduloId"`
	Description string `json:"descricao"`
	ModuleName  string `json:"nomeModulo"`
}

type TicketTypeRequest struct {
	Name        string `json:"nome"       validate:"required,max=100"`
	Description string `json:"descricao"  validate:"max=500"`
	Priority    int    `json:"prioridade" validate:"required,min=1,max=4"`
}

type TicketTypeFilter struct {
	Search   string
	Priority *int
}

type TicketTypeResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"nome"`
	Description   string `json:"descricao"`
	Priority      int    `json:"prioridade"`
	PriorityLabel string `json:"prioridadeTexto"`
}

type PriorityOption struct {
	Value int    `json:"valor"`
	Label string `json:"descricao"`
}

type TicketTypeStatistics struct {
	ID              uint   `json:"id"`
	Name            string `json:"nome"`
	Priority        int    `json:"prioridade"`
	TotalTickets    int64  `json:"totalAtendimentos"`
	OpenTickets     int64  `json:"atendimentosAbertos"`
	InProgress      int64  `json:"atendimentosEmAndamento"`
	ResolvedTickets int64  `json:"atendimentosResolvidos"`
}
