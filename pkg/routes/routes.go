package pkg

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"CampusEventPortal/internal/auth"
	"CampusEventPortal/internal/config"
	"CampusEventPortal/internal/dashboard"
	"CampusEventPortal/internal/event"
	"CampusEventPortal/internal/notification"
	"CampusEventPortal/internal/opportunity"
	"CampusEventPortal/pkg/middleware"
)

// PortalModules wires configuration, storage, services and handlers together.
var PortalModules = fx.Module("portal",
	fx.Provide(NewEchoServer),
	fx.Provide(config.NewDatabaseConfig),
	fx.Provide(config.NewDatabase),
	fx.Provide(config.NewResendConfig),
	fx.Provide(config.NewEmailService),

	fx.Provide(auth.NewUserRepository),
	fx.Provide(func(r *auth.UserRepository) auth.UserStore { return r }),
	fx.Provide(auth.NewUserService),
	fx.Provide(auth.NewAuthHandler),

	fx.Provide(notification.NewNotificationRepository),
	fx.Provide(func(r *notification.NotificationRepository) notification.NotificationStore { return r }),
	fx.Provide(func(r *auth.UserRepository) notification.RecipientSource { return r }),
	fx.Provide(notification.NewNotificationService),
	fx.Provide(notification.NewNotificationHandler),

	fx.Provide(event.NewEventRepository),
	fx.Provide(func(r *event.EventRepository) event.EventStore { return r }),
	fx.Provide(func(s *notification.NotificationService) event.Notifier { return s }),
	fx.Provide(event.NewEventService),
	fx.Provide(event.NewEventHandler),

	fx.Provide(opportunity.NewOpportunityRepository),
	fx.Provide(func(r *opportunity.OpportunityRepository) opportunity.OpportunityStore { return r }),
	fx.Provide(func(s *notification.NotificationService) opportunity.Notifier { return s }),
	fx.Provide(opportunity.NewOpportunityService),
	fx.Provide(opportunity.NewOpportunityHandler),

	fx.Provide(dashboard.NewDashboardRepository),
	fx.Provide(func(r *dashboard.DashboardRepository) dashboard.SummarySource { return r }),
	fx.Provide(dashboard.NewDashboardHandler),

	fx.Invoke(RunMigrations),
	fx.Invoke(RegisterRoutes))

// RunMigrations keeps the schema in sync with the models on startup.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&auth.User{},
		&event.Event{},
		&event.Confirmation{},
		&opportunity.Opportunity{},
		&notification.Notification{},
	)
}

func NewEchoServer(lc fx.Lifecycle) *echo.Echo {
	e := echo.New()
	middleware.SetupMiddleware(e)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("Server running on http://localhost" + addr)
			go func() {
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start the server:", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("shutting down the server ...")
			return e.Shutdown(ctx)
		},
	})
	return e
}

type handlers struct {
	fx.In

	Auth          *auth.AuthHandler
	Events        *event.EventHandler
	Opportunities *opportunity.OpportunityHandler
	Notifications *notification.NotificationHandler
	Dashboards    *dashboard.DashboardHandler
}

func RegisterRoutes(e *echo.Echo, h handlers) {
	e.POST("/login", h.Auth.Login)

	authed := e.Group("")
	authed.Use(middleware.JWTMiddleware)
	authed.POST("/change-password", h.Auth.ChangePassword)
	authed.GET("/me", h.Auth.Me)

	api := e.Group("/api")
	api.Use(middleware.JWTMiddleware)
	api.Use(middleware.CasbinMiddleware)

	admin := api.Group("/admin")
	admin.GET("/dashboard", h.Dashboards.AdminDashboard)
	admin.GET("/students-confirmed", h.Dashboards.StudentsConfirmed)
	admin.POST("/users", h.Auth.CreateUser)
	admin.GET("/users", h.Auth.ListUsers)
	admin.GET("/users/:id", h.Auth.GetUser)
	admin.PUT("/users/:id", h.Auth.UpdateUser)
	admin.DELETE("/users/:id", h.Auth.DeleteUser)
	registerEventRoutes(admin, h.Events)
	registerOpportunityRoutes(admin, h.Opportunities, true)
	admin.POST("/notifications", h.Notifications.Create)
	admin.GET("/notifications", h.Notifications.List)
	admin.GET("/notifications/:id", h.Notifications.Get)
	admin.DELETE("/notifications/:id", h.Notifications.Delete)

	head := api.Group("/head")
	head.GET("/dashboard", h.Dashboards.HeadDashboard)
	head.GET("/users", h.Auth.DepartmentUsers)
	registerEventRoutes(head, h.Events)
	registerOpportunityRoutes(head, h.Opportunities, true)

	employee := api.Group("/employee")
	employee.GET("/dashboard", h.Events.List)
	employee.GET("/profile", h.Auth.Me)
	employee.PUT("/profile", h.Auth.UpdateProfile)
	registerEventRoutes(employee, h.Events)
	registerOpportunityRoutes(employee, h.Opportunities, false)
	registerNotificationRoutes(employee, h.Notifications)

	student := api.Group("/student")
	student.GET("/dashboard", h.Events.MyConfirmations)
	student.GET("/profile", h.Auth.Me)
	student.PUT("/profile", h.Auth.UpdateProfile)
	student.GET("/events", h.Events.List)
	student.GET("/events/calendar", h.Events.Calendar)
	student.GET("/events/:id", h.Events.Get)
	student.POST("/confirmations", h.Events.Confirm)
	student.GET("/confirmations", h.Events.MyConfirmations)
	registerOpportunityRoutes(student, h.Opportunities, false)
	registerNotificationRoutes(student, h.Notifications)
}

// registerEventRoutes mounts the event surface for roles that can manage
// events. Instance-level rules stay in the service layer.
func registerEventRoutes(g *echo.Group, h *event.EventHandler) {
	g.POST("/events", h.Create)
	g.GET("/events", h.List)
	g.GET("/events/calendar", h.Calendar)
	g.GET("/events/:id", h.Get)
	g.PUT("/events/:id", h.Update)
	g.DELETE("/events/:id", h.Delete)
	g.GET("/events/:id/confirmations", h.Confirmations)
}

func registerOpportunityRoutes(g *echo.Group, h *opportunity.OpportunityHandler, manage bool) {
	g.GET("/opportunities", h.List)
	g.GET("/opportunities/:id", h.Get)
	if manage {
		g.POST("/opportunities", h.Create)
		g.PUT("/opportunities/:id", h.Update)
		g.DELETE("/opportunities/:id", h.Delete)
	}
}

func registerNotificationRoutes(g *echo.Group, h *notification.NotificationHandler) {
	g.GET("/notifications", h.List)
	g.GET("/notifications/:id", h.Get)
	g.PUT("/notifications/:id/read", h.MarkRead)
}
