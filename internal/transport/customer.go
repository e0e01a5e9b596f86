package transport

type CustomerRequest struct {
	Code            string `json:"codigoCliente" validate:"required,max=15"`
	ServiceCenterID uint   `json:"caId"          validate:"required"`
	Name            string `json:"nomeCliente"   validate:"required,max=200"`
	CompanyName     string `json:"razaoSocial"   validate:"max=200"`
	TaxID           string `json:"cnpjCpf"       validate:"max=18"`
	City            string `json:"cidade"        validate:"max=100"`
	State           string `json:"uf"            validate:"omitempty,len=2"`
	Phone           string `json:"telefone"      validate:"max=20"`
	Email           string `json:"email"         validate:"omitempty,email,max=150"`
	Manager         string `json:"responsavel"   validate:"max=100"`
	Status          string `json:"statusCliente" validate:"omitempty,max=20"`
}

type CustomerFilter struct {
	Search          string
	ServiceCenterID *uint
	Status          string
}

type CustomerResponse struct {
	ID                uint   `json:"id"`
	Code              string `json:"codigoCliente"`
	ServiceCenterID   uint   `json:"caId"`
	Name              string `json:"nomeCliente"`
	CompanyName       string `json:"razaoSocial"`
	TaxID             string `json:"cnpjCpf"`
	City              string `json:"cidade"`
	State             string `json:"uf"`
	Phone             string `json:"telefone"`
	Email             string `json:"email"`
	Manager           string `json:"responsavel"`
	Status            string `json:"statusCliente"`
	IsActive          bool   `json:"isActive"`
	ServiceCenterName string `json:"nomeCa"`
	ServiceCenterCode string `json:"codigoCa"`
	TotalTickets      int64  `json:"totalAtendimentos"`
}
