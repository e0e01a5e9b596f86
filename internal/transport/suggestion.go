package transport

import "time"

type CreateSuggestionRequest struct {
	Title           string `json:"titulo"    validate:"required,max=200"`
	Content         string `json:"conteudo"  validate:"required"`
	CustomerID      *uint  `json:"clienteId"`
	ServiceCenterID *uint  `json:"caId"`
}

type UpdateSuggestionRequest struct {
	Title           *string `json:"titulo"   validate:"omitempty,max=200"`
	Content         *string `json:"conteudo"`
	CustomerID      *uint   `json:"clienteId"`
	ServiceCenterID *uint   `json:"caId"`
}

type SuggestionFilter struct {
	Search          string
	IsRead          *bool
	CustomerID      *uint
	ServiceCenterID *uint
	OwnerID         uint
}

type SuggestionResponse struct {
	ID                uint      `json:"id"`
	Title             string    `json:"titulo"`
	Content           string    `json:"conteudo"`
	IsRead            bool      `json:"isRead"`
	UserID            uint      `json:"usuarioId"`
	UserName          string    `json:"nomeUsuario"`
	UserEmail         string    `json:"emailUsuario"`
	CustomerID        *uint     `json:"clienteId"`
	CustomerName      *string   `json:"nomeCliente"`
	CustomerCode      *string   `json:"codigoCliente"`
	ServiceCenterID   *uint     `json:"caId"`
	ServiceCenterName *string   `json:"nomeCa"`
	ServiceCenterCode *string   `json:"codigoCa"`
	CreatedAt         time.Time `json:"createdAt"`
}

type SuggestionStatistics struct {
	Total   int64 `json:"totalSugestoes"`
	Read    int64 `json:"sugestoesLidas"`
	Unread  int64 `json:"sugestoesNaoLidas"`
	Today   int64 `json:"sugestoesHoje"`
	Authors int64 `json:"sugestoesPorUsuario"`
}
