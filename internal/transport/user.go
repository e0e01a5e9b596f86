package transport

import (
	"time"

	"github.com/Skotchmaster/helpdesk/internal/models"
)

type CreateUserRequest struct {
	Name     string `json:"nomeUsuario" validate:"required,max=100"`
	Email    string `json:"email"       validate:"required,email,max=150"`
	Password string `json:"senha"       validate:"required,min=8,max=100"`
	Phone    string `json:"telefone"    validate:"max=20"`
	JobTitle string `json:"cargo"       validate:"max=100"`
	IsAdmin  bool   `json:"isAdmin"`
}

type UpdateUserRequest struct {
	Name     *string `json:"nomeUsuario" validate:"omitempty,max=100"`
	Email    *string `json:"email"       validate:"omitempty,email,max=150"`
	Phone    *string `json:"telefone"    validate:"omitempty,max=20"`
	JobTitle *string `json:"cargo"       validate:"omitempty,max=100"`
	IsAdmin  *bool   `json:"isAdmin"`
}

type UserFilter struct {
	Search   string
	IsAdmin  *bool
	IsActive *bool
}

type UserResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"nomeUsuario"`
	Email       string     `json:"email"`
	Phone       string     `json:"telefone"`
	JobTitle    string     `json:"cargo"`
	IsAdmin     bool       `json:"isAdmin"`
	LastLoginAt *time.Time `json:"ultimoLogin"`
	IsActive    bool       `json:"isActive"`
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		JobTitle:    u.JobTitle,
		IsAdmin:     u.IsAdmin,
		LastLoginAt: u.LastLoginAt,
		IsActive:    u.IsActive,
	}
}
