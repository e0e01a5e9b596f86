package app

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/helpdesk/internal/httpserver"
	"github.com/Skotchmaster/helpdesk/internal/middleware/auth"
	"github.com/Skotchmaster/helpdesk/internal/repo"
	"github.com/Skotchmaster/helpdesk/internal/search"
	"github.com/Skotchmaster/helpdesk/internal/service"
	"github.com/Skotchmaster/helpdesk/pkg/events"
	loggingmw "github.com/Skotchmaster/helpdesk/pkg/middleware/logging"
	"github.com/Skotchmaster/helpdesk/pkg/middleware/metrics"
	"github.com/Skotchmaster/helpdesk/pkg/tokens"
)

type Options struct {
	DB               *gorm.DB
	Tokens           *tokens.Issuer
	RefreshTTL       time.Duration
	SettingsCacheTTL time.Duration
	Events           events.Publisher
	Indexer          search.TicketIndexer
	Logger           *slog.Logger
	CORSOrigins      []string
}

type App struct {
	Echo *echo.Echo
	Repo *repo.GormRepo

	Auth     *service.AuthService
	Users    *service.UserService
	Tickets  *service.TicketService
	Settings *service.SettingService
}

// New wires repositories, services and handlers into an echo instance.
func New(opts Options) *App {
	if opts.Events == nil {
		opts.Events = events.Nop{}
	}
	if opts.Indexer == nil {
		opts.Indexer = search.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	r := repo.New(opts.DB)
	settings := service.NewSettingService(r, opts.SettingsCacheTTL)
	authSvc := &service.AuthService{Repo: r, Tokens: opts.Tokens, RefreshTTL: opts.RefreshTTL, Events: opts.Events}
	users := &service.UserService{Repo: r, Events: opts.Events}
	customers := &service.CustomerService{Repo: r, Events: opts.Events}
	tickets := &service.TicketService{Repo: r, Settings: settings, Events: opts.Events, Indexer: opts.Indexer}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpserver.NewRequestValidator()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(metrics.Middleware())
	e.Use(loggingmw.RequestLogger(opts.Logger))
	if len(opts.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: opts.CORSOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	} else {
		e.Use(echomw.CORS())
	}

	httpserver.Register(e, &httpserver.Deps{
		Users:          &httpserver.UserHTTP{Auth: authSvc, Users: users},
		ServiceCenters: &httpserver.ServiceCenterHTTP{Svc: &service.ServiceCenterService{Repo: r}, CustomerSvc: customers},
		Customers:      &httpserver.CustomerHTTP{Svc: customers},
		Modules:        &httpserver.ModuleHTTP{Svc: &service.ModuleService{Repo: r}},
		Subjects:       &httpserver.SubjectHTTP{Svc: &service.SubjectService{Repo: r}},
		TicketTypes:    &httpserver.TicketTypeHTTP{Svc: &service.TicketTypeService{Repo: r}},
		Statuses:       &httpserver.StatusHTTP{Svc: &service.StatusService{Repo: r}},
		Tickets:        &httpserver.TicketHTTP{Svc: tickets},
		Suggestions:    &httpserver.SuggestionHTTP{Svc: &service.SuggestionService{Repo: r}},
		Settings:       &httpserver.SettingHTTP{Svc: settings},
		Auth:           auth.NewBearerAuth(opts.Tokens),
		DB:             r,
	})

	return &App{
		Echo:     e,
		Repo:     r,
		Auth:     authSvc,
		Users:    users,
		Tickets:  tickets,
		Settings: settings,
	}
}
