package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/workforce-api/internal/middleware"
	"github.com/yukikurage/workforce-api/internal/services"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

// Services bundles the services the API is served from.
type Services struct {
	Auth          *services.AuthService
	Permissions   *services.PermissionService
	Clock         *services.ClockService
	Exceptions    *services.ExceptionService
	Schedule      *services.ScheduleService
	Wellbeing     *services.WellbeingService
	Organizations *services.OrganizationService
}

// RegisterRoutes mounts the health check and the /api routes on r. Session middleware must
// already be installed.
func RegisterRoutes(r *gin.Engine, svc Services, clock Clock, logger zerolog.Logger) {
	authHandler := NewAuthHandler(svc.Auth, svc.Permissions, logger)
	scheduleHandler := NewScheduleHandler(svc.Schedule, clock, logger)
	clockHandler := NewClockHandler(svc.Clock, clock, logger)
	exceptionHandler := NewExceptionHandler(svc.Exceptions, svc.Clock, clock, logger)
	wellbeingHandler := NewWellbeingHandler(svc.Wellbeing, clock, logger)
	orgHandler := NewOrganizationHandler(svc.Organizations, logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Workforce API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth())
		{
			protected.GET("/me/capabilities", authHandler.GetCapabilities)

			protected.GET("/organization", orgHandler.GetOrganization)
			protected.PATCH("/organization/settings", orgHandler.UpdateSettings)
			protected.PUT("/organization/permissions", orgHandler.UpdatePermissions)

			protected.POST("/shifts", scheduleHandler.CreateShift)
			protected.GET("/shifts", scheduleHandler.ListShifts)
			protected.POST("/shifts/:id/clock-in", clockHandler.ClockIn)
			protected.GET("/projects/:id/allocation", scheduleHandler.GetAllocation)

			protected.GET("/clock-entries", clockHandler.ListEntries)
			protected.POST("/clock-entries/:id/clock-out", clockHandler.ClockOut)
			protected.POST("/clock-entries/:id/rating", clockHandler.RateEntry)

			protected.POST("/exceptions", exceptionHandler.RequestException)
			protected.GET("/exceptions", exceptionHandler.ListExceptions)
			protected.POST("/exceptions/force", exceptionHandler.ForceException)
			protected.POST("/exceptions/:id/approve", exceptionHandler.ApproveException)
			protected.POST("/exceptions/:id/deny", exceptionHandler.DenyException)

			protected.POST("/moods", wellbeingHandler.LogMood)
			protected.GET("/users/:id/burnout-risk", wellbeingHandler.GetUserRisk)
		}

		team := api.Group("/team")
		team.Use(middleware.RequireAuth(), middleware.RequireCapability(svc.Permissions, workforce.CapabilityViewAnalytics, logger))
		{
			team.GET("/burnout-risk", wellbeingHandler.GetTeamRisk)
		}
	}
}
