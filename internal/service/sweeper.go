package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Skotchmaster/helpdesk/internal/repo"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
)

// SessionSweeper periodically deletes refresh tokens that expired or were
// revoked more than Retention ago.
type SessionSweeper struct {
	Repo      *repo.GormRepo
	Retention time.Duration
	Logger    *slog.Logger
	Now       func() time.Time

	cron *cron.Cron
}

type cronLogger struct{ l *slog.Logger }

func (c cronLogger) Info(msg string, kv ...any) { c.l.Debug(msg, kv...) }

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Error(msg, append(kv, "error", err)...)
}

func NewSessionSweeper(r *repo.GormRepo, schedule string, retention time.Duration, l *slog.Logger) (*SessionSweeper, error) {
	if l == nil {
		l = slog.Default()
	}
	s := &SessionSweeper{Repo: r, Retention: retention, Logger: l.With("job", "session_sweeper")}

	cl := cronLogger{l: s.Logger}
	s.cron = cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl)))
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("session sweeper schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *SessionSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = logging.IntoContext(ctx, s.Logger)

	if _, err := s.Sweep(ctx); err != nil {
		s.Logger.Error("session_sweep_error", "error", err)
	}
}

func (s *SessionSweeper) Sweep(ctx context.Context) (int64, error) {
	now := nowUTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	n, err := s.Repo.PurgeSessions(ctx, now.Add(-s.Retention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logging.FromContext(ctx).Info("session_sweep_done", "deleted", n)
	}
	return n, nil
}

func (s *SessionSweeper) Start() { s.cron.Start() }

// Stop waits for a running sweep to finish or for ctx to expire.
func (s *SessionSweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
