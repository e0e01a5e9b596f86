package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/helpdesk/internal/middleware/auth"
	"github.com/Skotchmaster/helpdesk/pkg/middleware/metrics"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Users          *UserHTTP
	ServiceCenters *ServiceCenterHTTP
	Customers      *CustomerHTTP
	Modules        *ModuleHTTP
	Subjects       *SubjectHTTP
	TicketTypes    *TicketTypeHTTP
	Statuses       *StatusHTTP
	Tickets        *TicketHTTP
	Suggestions    *SuggestionHTTP
	Settings       *SettingHTTP

	Auth *auth.BearerAuth
	DB   Pinger
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.DB != nil {
			if err := d.DB.Ping(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
			}
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", metrics.Handler())

	api := e.Group("/api")
	admin := d.Auth.RequireAdmin

	users := api.Group("/Usuario")
	users.POST("/login", d.Users.Login)
	users.POST("/refresh", d.Users.Refresh)
	users.POST("/logout", d.Users.Logout, d.Auth.RequireAuth)
	users.GET("/me", d.Users.Me, d.Auth.RequireAuth)
	users.PUT("/:id", d.Users.Update, d.Auth.RequireAuth)
	users.PUT("/:id/password", d.Users.ChangePassword, d.Auth.RequireAuth)
	users.GET("", d.Users.List, admin)
	users.GET("/:id", d.Users.Get, admin)
	users.POST("", d.Users.Create, admin)
	users.PATCH("/:id/reactivate", d.Users.Reactivate, admin)
	users.DELETE("/:id", d.Users.Deactivate, admin)

	cas := api.Group("/Ca", d.Auth.RequireAuth)
	cas.GET("", d.ServiceCenters.List)
	cas.GET("/codigo/:codigo", d.ServiceCenters.GetByCode)
	cas.GET("/:id", d.ServiceCenters.Get)
	cas.GET("/:id/clientes", d.ServiceCenters.Customers)
	cas.POST("", d.ServiceCenters.Create, admin)
	cas.PUT("/:id", d.ServiceCenters.Update, admin)
	cas.DELETE("/:id", d.ServiceCenters.Delete, admin)

	customers := api.Group("/Cliente", d.Auth.RequireAuth)
	customers.GET("", d.Customers.List)
	customers.GET("/statuses", d.Customers.Statuses)
	customers.GET("/ca/:caId/codigo/:codigo", d.Customers.GetByCode)
	customers.GET("/:id", d.Customers.Get)
	customers.POST("", d.Customers.Create, admin)
	customers.PUT("/:id", d.Customers.Update, admin)
	customers.PATCH("/:id/status", d.Customers.ChangeStatus, admin)
	customers.DELETE("/:id", d.Customers.Delete, admin)

	modules := api.Group("/Modulo", d.Auth.RequireAuth)
	modules.GET("", d.Modules.List)
	modules.GET("/:id", d.Modules.Get)
	modules.GET("/:id/assuntos", d.Modules.Subjects)
	modules.GET("/:id/statistics", d.Modules.Statistics, admin)
	modules.POST("", d.Modules.Create, admin)
	modules.PUT("/:id", d.Modules.Update, admin)
	modules.DELETE("/:id", d.Modules.Delete, admin)

	subjects := api.Group("/Assunto", d.Auth.RequireAuth)
	subjects.GET("", d.Subjects.List)
	subjects.GET("/modulo/:moduloId", d.Subjects.ByModule)
	subjects.GET("/:id", d.Subjects.Get)
	subjects.POST("", d.Subjects.Create, admin)
	subjects.PUT("/:id", d.Subjects.Update, admin)
	subjects.DELETE("/:id", d.Subjects.Delete, admin)

	types := api.Group("/TipoAtendimento", d.Auth.RequireAuth)
	types.GET("", d.TicketTypes.List)
	types.GET("/prioridades", d.TicketTypes.Priorities)
	types.GET("/statistics", d.TicketTypes.Statistics, admin)
	types.GET("/:id", d.TicketTypes.Get)
	types.POST("", d.TicketTypes.Create, admin)
	types.PUT("/:id", d.TicketTypes.Update, admin)
	types.DELETE("/:id", d.TicketTypes.Delete, admin)

	api.GET("/StatusAtendimento", d.Statuses.List, d.Auth.RequireAuth)

	tickets := api.Group("/Atendimento", d.Auth.RequireAuth)
	tickets.GET("", d.Tickets.List)
	tickets.GET("/statistics", d.Tickets.Statistics)
	tickets.GET("/:id", d.Tickets.Get)
	tickets.POST("", d.Tickets.Create)
	tickets.PUT("/:id", d.Tickets.Update)
	tickets.DELETE("/:id", d.Tickets.Delete)

	suggestions := api.Group("/Sugestao", d.Auth.RequireAuth)
	suggestions.GET("", d.Suggestions.List)
	suggestions.GET("/statistics", d.Suggestions.Statistics, admin)
	suggestions.GET("/:id", d.Suggestions.Get)
	suggestions.POST("", d.Suggestions.Create)
	suggestions.PUT("/:id", d.Suggestions.Update)
	suggestions.PATCH("/:id/read", d.Suggestions.MarkRead, admin)
	suggestions.DELETE("/:id", d.Suggestions.Delete)

	settings := api.Group("/Configuration")
	settings.GET("/public", d.Settings.Public)
	settings.GET("/system-info", d.Settings.SystemInfo)
	settings.GET("", d.Settings.List, admin)
	settings.GET("/:chave", d.Settings.Get, d.Auth.RequireAuth)
	settings.PUT("/:chave", d.Settings.Update, admin)
}
