package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/workforce-api/internal/config"
	"github.com/yukikurage/workforce-api/internal/constants"
	"github.com/yukikurage/workforce-api/internal/database"
	"github.com/yukikurage/workforce-api/internal/handlers"
	"github.com/yukikurage/workforce-api/internal/logging"
	"github.com/yukikurage/workforce-api/internal/middleware"
	"github.com/yukikurage/workforce-api/internal/repository"
	"github.com/yukikurage/workforce-api/internal/services"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	boot := logging.New("info", "console")
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("Failed to connect to database")
	}

	// Run migrations
	if err := database.MigrateDatabase(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Setup session store with Redis
	store, err := redisStore.NewStore(
		10,              // Redis pool size
		"tcp",           // network type
		cfg.RedisAddr(), // Redis address from config
		"",              // username (empty for default user)
		"",              // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.RedisAddr()).Msg("Failed to create Redis store")
	}
	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})

	r := newRouter(db, store, time.Now, logger)

	// Start server
	logger.Info().Str("addr", cfg.HTTPAddr).Msg("Server starting")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

// newRouter builds the gin engine with sessions, request logging and every API route.
func newRouter(db *gorm.DB, store sessions.Store, clock handlers.Clock, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	orgRepo := repository.NewOrganizationRepository(db)
	userRepo := repository.NewUserRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	entryRepo := repository.NewClockEntryRepository(db)
	exceptionRepo := repository.NewExceptionRepository(db)

	perms := services.NewPermissionService(orgRepo, userRepo)
	handlers.RegisterRoutes(r, handlers.Services{
		Auth:          services.NewAuthService(userRepo),
		Permissions:   perms,
		Clock:         services.NewClockService(perms, shiftRepo, entryRepo, exceptionRepo),
		Exceptions:    services.NewExceptionService(perms, shiftRepo, entryRepo, exceptionRepo),
		Schedule:      services.NewScheduleService(perms, userRepo, repository.NewProjectRepository(db), shiftRepo),
		Wellbeing:     services.NewWellbeingService(perms, userRepo, repository.NewMoodRepository(db)),
		Organizations: services.NewOrganizationService(perms, orgRepo),
	}, clock, logger)
	return r
}
