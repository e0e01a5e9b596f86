package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/repo"
	"github.com/Skotchmaster/helpdesk/pkg/events"
	"github.com/Skotchmaster/helpdesk/pkg/hash"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
	"github.com/Skotchmaster/helpdesk/pkg/tokens"
)

// MaxLoginAttempts consecutive failures deactivate the account.
const MaxLoginAttempts = 5

type AuthService struct {
	Repo       *repo.GormRepo
	Tokens     *tokens.Issuer
	RefreshTTL time.Duration
	Events     events.Publisher
	Now        func() time.Time
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

type LoginResult struct {
	TokenPair
	User models.User
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Login(ctx context.Context, email, password, ip string) (*LoginResult, error) {
	email = NormalizeEmail(email)
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", email)

	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.FindActiveUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "unknown or inactive user")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		if err := s.recordFailure(ctx, user); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.Repo.RecordLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LoginAttempts = 0
	user.LastLoginAt = &now

	pair, err := s.issue(ctx, s.Repo, user, ip)
	if err != nil {
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return &LoginResult{TokenPair: *pair, User: *user}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, user *models.User) error {
	l := logging.FromContext(ctx).With("svc", "auth.login", "user_id", user.ID)

	var locked bool
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		attempts, err := tx.IncrementLoginAttempts(ctx, user.ID)
		if err != nil {
			return err
		}
		if attempts >= MaxLoginAttempts {
			locked = true
			return tx.DeactivateUser(ctx, user.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record failed login: %w", err)
	}

	if locked {
		l.Warn("user_locked", "reason", "too many failed logins")
		publish(ctx, s.Events, events.New(events.UserLocked, 0, user.ID, map[string]any{"email": user.Email}))
	} else {
		l.Warn("login_failed", "reason", "wrong password")
	}
	return nil
}

// issue signs an access token and stores a fresh refresh token through r,
// which may be bound to an open transaction.
func (s *AuthService) issue(ctx context.Context, r *repo.GormRepo, user *models.User, ip string) (*TokenPair, error) {
	access, accessExp, err := s.Tokens.Sign(tokens.Subject{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh, err := tokens.NewRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	now := s.now()
	refreshExp := now.Add(s.RefreshTTL)
	if err := r.CreateRefreshToken(ctx, &models.RefreshToken{
		TokenHash:   tokens.Digest(refresh),
		UserID:      user.ID,
		ExpiresAt:   refreshExp,
		CreatedAt:   now,
		CreatedByIP: ip,
	}); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

// Refresh consumes a refresh token and returns a new pair. A token is
// accepted at most once, even when two requests race on it.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, ip string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	var pair *TokenPair
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		stored, err := tx.FindRefreshToken(ctx, tokens.Digest(refreshToken))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidRefreshToken
			}
			return err
		}
		now := s.now()
		if !stored.Active(now) {
			return ErrInvalidRefreshToken
		}

		user, err := tx.GetUser(ctx, stored.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidRefreshToken
			}
			return err
		}
		if !user.IsActive {
			return ErrInvalidRefreshToken
		}

		revoked, err := tx.RevokeRefreshToken(ctx, stored.ID, now)
		if err != nil {
			return err
		}
		if !revoked {
			return ErrInvalidRefreshToken
		}

		pair, err = s.issue(ctx, tx, user, ip)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			l.Warn("refresh_failed", "reason", "unknown, used or expired token")
		}
		return nil, err
	}
	return pair, nil
}

// Logout revokes every active refresh token of the user.
func (s *AuthService) Logout(ctx context.Context, userID uint) (int64, error) {
	n, err := s.Repo.RevokeAllRefreshTokens(ctx, userID, s.now())
	if err != nil {
		return 0, err
	}
	logging.FromContext(ctx).Info("logout_success", "svc", "auth.logout", "revoked", n)
	return n, nil
}
