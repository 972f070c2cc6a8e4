package cmd

import (
	"context"
	"database/sql"
	"net"

	"github.com/haneul-labs/daily-record/app/controller"
	"github.com/haneul-labs/daily-record/app/middleware"
	"github.com/haneul-labs/daily-record/app/repository"
	"github.com/haneul-labs/daily-record/app/service"
	"github.com/haneul-labs/daily-record/config"
	"github.com/haneul-labs/daily-record/migrations"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP (Echo) server for the daily-record service.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	if cfg.AutoMigrate {
		if err := migrations.Run(context.Background(), db); err != nil {
			logrus.WithError(err).Fatal("Failed to run migrations")
		}
		logrus.Info("Migrations applied")
	}

	startHTTPServer(cfg, db)
}

func startHTTPServer(cfg *config.Config, db *sql.DB) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	recordRepo := repository.NewDailyRecordRepository(db)
	overeatRepo := repository.NewDailyOvereatRepository(db)
	pairRepo := repository.NewPairRepository(db)
	pairEventRepo := repository.NewPairEventRepository(db)

	codec := service.NewTokenCodec(cfg)
	authService := service.NewAuthService(db, userRepo, refreshTokenRepo, codec, cfg)
	userService := service.NewUserService(userRepo)
	adminService := service.NewAdminUserService(db, userRepo, refreshTokenRepo)
	categoryService := service.NewCategoryService(db, categoryRepo)
	recordService := service.NewDailyRecordService(recordRepo, categoryRepo, userRepo)
	pairService := service.NewPairService(db, pairRepo, userRepo, pairEventRepo, recordService, cfg)
	overeatService := service.NewDailyOvereatService(overeatRepo, pairService)
	pairEventService := service.NewPairEventService(pairEventRepo, pairService)

	cookies := controller.NewCookieWriter()
	authController := controller.NewAuthController(authService, cookies)
	userController := controller.NewUserController(userService)
	adminController := controller.NewAdminUserController(adminService)
	categoryController := controller.NewCategoryController(categoryService)
	recordController := controller.NewDailyRecordController(recordService)
	overeatController := controller.NewDailyOvereatController(overeatService)
	pairController := controller.NewPairController(pairService, pairEventService)

	authMiddleware := middleware.NewAuthMiddleware(codec)
	e.Use(authMiddleware.Authenticate)

	auth := e.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.POST("/refresh", authController.Refresh)
	auth.POST("/logout", authController.Logout)

	me := e.Group("/users/me", authMiddleware.RequireAuth)
	me.GET("", userController.Me)
	me.PATCH("", userController.UpdateMe)

	categories := e.Group("/categories", authMiddleware.RequireAuth)
	categories.GET("", categoryController.List)
	categories.POST("", categoryController.Create, authMiddleware.RequireAdmin)
	categories.POST("/move", categoryController.Move, authMiddleware.RequireAdmin)
	categories.GET("/:id", categoryController.Get)
	categories.PUT("/:id", categoryController.Update, authMiddleware.RequireAdmin)
	categories.DELETE("/:id", categoryController.Delete, authMiddleware.RequireAdmin)

	records := e.Group("/daily-records", authMiddleware.RequireAuth)
	records.GET("", recordController.List)
	records.POST("", recordController.Create)
	records.PUT("/:id", recordController.Update)
	records.DELETE("/:id", recordController.Delete)

	overeats := e.Group("/daily-overeats", authMiddleware.RequireAuth)
	overeats.GET("", overeatController.List)
	overeats.PUT("", overeatController.Upsert)

	pair := e.Group("/pair", authMiddleware.RequireAuth)
	pair.POST("/invite", pairController.CreateInvite)
	pair.POST("/accept", pairController.AcceptInvite)
	pair.GET("", pairController.Status)
	pair.DELETE("", pairController.Unpair)
	pair.GET("/daily-records", pairController.PartnerDailyRecords)
	pair.GET("/events", pairController.ListEvents)
	pair.POST("/events", pairController.CreateEvent)
	pair.DELETE("/events/:id", pairController.DeleteEvent)

	admin := e.Group("/admin/users", authMiddleware.RequireAdmin)
	admin.GET("", adminController.List)
	admin.GET("/:id", adminController.Get)
	admin.PUT("/:id", adminController.Update)
	admin.DELETE("/:id", adminController.Delete)

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}

func configureLogging(cfg *config.Config) error {
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	return nil
}
