package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/helpdesk/internal/access"
	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/repo"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
	"github.com/Skotchmaster/helpdesk/pkg/events"
	"github.com/Skotchmaster/helpdesk/pkg/hash"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
)

const MinPasswordLength = 8

const (
	msgUserNotFound   = "usuário não encontrado"
	msgEmailTaken     = "email já cadastrado"
	msgPasswordLength = "a senha deve ter no mínimo 8 caracteres"
)

type UserService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *UserService) List(ctx context.Context, f transport.UserFilter, page util.PageRequest) (util.Page[transport.UserResponse], error) {
	items, total, err := s.Repo.ListUsers(ctx, f, page)
	if err != nil {
		return util.Page[transport.UserResponse]{}, err
	}
	return util.MapPage(util.NewPage(items, total, page), transport.NewUserResponse), nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*transport.UserResponse, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		return nil, lookup(err, msgUserNotFound)
	}
	resp := transport.NewUserResponse(*user)
	return &resp, nil
}

func (s *UserService) Create(ctx context.Context, req transport.CreateUserRequest) (*transport.UserResponse, error) {
	l := logging.FromContext(ctx).With("svc", "user.create")

	if len([]rune(req.Password)) < MinPasswordLength {
		return nil, validation(msgPasswordLength)
	}
	email := NormalizeEmail(req.Email)
	pw, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: pw,
		IsAdmin:      req.IsAdmin,
		Phone:        strings.TrimSpace(req.Phone),
		JobTitle:     strings.TrimSpace(req.JobTitle),
		IsActive:     true,
	}

	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		taken, err := tx.EmailTaken(ctx, email, 0)
		if err != nil {
			return err
		}
		if taken {
			return conflict(msgEmailTaken)
		}
		return duplicate(tx.CreateUser(ctx, &user), msgEmailTaken)
	})
	if err != nil {
		return nil, err
	}

	l.Info("user_created", "user_id", user.ID, "is_admin", user.IsAdmin)
	resp := transport.NewUserResponse(user)
	return &resp, nil
}

// Update lets a user edit their own profile; admins may edit anyone and
// are the only ones allowed to change the admin flag.
func (s *UserService) Update(ctx context.Context, caller access.Identity, id uint, req transport.UpdateUserRequest) error {
	if !caller.Owns(id) {
		return forbidden("sem permissão para alterar este usuário")
	}

	return s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		user, err := tx.GetUser(ctx, id)
		if err != nil {
			return lookup(err, msgUserNotFound)
		}
		if !user.IsActive {
			return notFound(msgUserNotFound)
		}

		if req.Email != nil {
			email := NormalizeEmail(*req.Email)
			if email != "" && email != user.Email {
				taken, err := tx.EmailTaken(ctx, email, user.ID)
				if err != nil {
					return err
				}
				if taken {
					return conflict(msgEmailTaken)
				}
				user.Email = email
			}
		}
		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			user.Name = strings.TrimSpace(*req.Name)
		}
		if req.Phone != nil {
			user.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.JobTitle != nil {
			user.JobTitle = strings.TrimSpace(*req.JobTitle)
		}
		if req.IsAdmin != nil && caller.IsAdmin && *req.IsAdmin != user.IsAdmin {
			if !*req.IsAdmin {
				if err := ensureAnotherAdmin(ctx, tx, user); err != nil {
					return err
				}
			}
			user.IsAdmin = *req.IsAdmin
		}

		return duplicate(tx.SaveUser(ctx, user), msgEmailTaken)
	})
}

func (s *UserService) ChangePassword(ctx context.Context, caller access.Identity, id uint, password string) error {
	if !caller.Owns(id) {
		return forbidden("sem permissão para alterar a senha deste usuário")
	}
	if len([]rune(password)) < MinPasswordLength {
		return validation(msgPasswordLength)
	}

	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		return lookup(err, msgUserNotFound)
	}
	if !user.IsActive {
		return notFound(msgUserNotFound)
	}

	pw, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.Repo.SetUserPassword(ctx, id, pw); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("password_changed", "svc", "user.change_password", "user_id", id)
	return nil
}

func (s *UserService) Reactivate(ctx context.Context, id uint) error {
	return s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		user, err := tx.GetUser(ctx, id)
		if err != nil {
			return lookup(err, msgUserNotFound)
		}
		if user.IsActive {
			return validation("usuário já está ativo")
		}
		return tx.ReactivateUser(ctx, id)
	})
}

// Deactivate soft-deletes a user. The last active admin cannot be
// removed and nobody can deactivate themselves.
func (s *UserService) Deactivate(ctx context.Context, caller access.Identity, id uint) error {
	if caller.UserID == id {
		return validation("não é possível desativar o próprio usuário")
	}

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		user, err := tx.GetUser(ctx, id)
		if err != nil {
			return lookup(err, msgUserNotFound)
		}
		if !user.IsActive {
			return notFound(msgUserNotFound)
		}
		if user.IsAdmin {
			if err := ensureAnotherAdmin(ctx, tx, user); err != nil {
				return err
			}
		}
		if err := tx.DeactivateUser(ctx, id); err != nil {
			return err
		}
		_, err = tx.RevokeAllRefreshTokens(ctx, id, nowUTC())
		return err
	})
	if err != nil {
		return err
	}

	publish(ctx, s.Events, events.New(events.UserDeactivated, caller.UserID, id, nil))
	return nil
}

func ensureAnotherAdmin(ctx context.Context, tx *repo.GormRepo, user *models.User) error {
	if !user.IsActive || !user.IsAdmin {
		return nil
	}
	admins, err := tx.CountActiveAdmins(ctx)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return validation("não é possível remover o último administrador ativo")
	}
	return nil
}
