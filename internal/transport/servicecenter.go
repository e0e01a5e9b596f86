package transport

type ServiceCenterRequest struct {
	Code    string `json:"codigoCa"    validate:"required,max=10"`
	Name    string `json:"nomeCa"      validate:"required,max=100"`
	City    string `json:"cidade"      validate:"max=100"`
	State   string `json:"uf"          validate:"omitempty,len=2"`
	Phone   string `json:"telefone"    validate:"max=20"`
	Email   string `json:"email"       validate:"omitempty,email,max=150"`
	Manager string `json:"responsavel" validate:"max=100"`
}

type ServiceCenterFilter struct {
	Search string
}

type ServiceCenterResponse struct {
	ID           uint   `json:"id"`
	Code         string `json:"codigoCa"`
	Name         string `json:"nomeCa"`
	City         string `json:"cidade"`
	State        string `json:"uf"`
	Phone        string `json:"telefone"`
	Email        string `json:"email"`
	Manager      string `json:"responsavel"`
	IsActive     bool   `json:"isActive"`
	TotalClients int64  `json:"totalClientes"`
	TotalTickets int64  `json:"totalAtendimentos"`
}
