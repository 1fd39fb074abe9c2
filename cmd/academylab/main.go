package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authApp "github.com/davicafu/academylab/internal/auth/application"
	authHttp "github.com/davicafu/academylab/internal/auth/infra/inbound/http"
	"github.com/davicafu/academylab/internal/auth/infra/outbound/token"
	batchApp "github.com/davicafu/academylab/internal/batch/application"
	batchHttp "github.com/davicafu/academylab/internal/batch/infra/inbound/http"
	batchRepo "github.com/davicafu/academylab/internal/batch/infra/outbound/db/sqlrepo"
	"github.com/davicafu/academylab/internal/config"
	courseApp "github.com/davicafu/academylab/internal/course/application"
	courseEvents "github.com/davicafu/academylab/internal/course/infra/inbound/events"
	courseHttp "github.com/davicafu/academylab/internal/course/infra/inbound/http"
	courseRepo "github.com/davicafu/academylab/internal/course/infra/outbound/db/sqlrepo"
	infraDB "github.com/davicafu/academylab/internal/infra/db"
	infraRelayer "github.com/davicafu/academylab/internal/infra/relayer"
	otpApp "github.com/davicafu/academylab/internal/otp/application"
	otpHttp "github.com/davicafu/academylab/internal/otp/infra/inbound/http"
	userApp "github.com/davicafu/academylab/internal/user/application"
	userEvents "github.com/davicafu/academylab/internal/user/infra/inbound/events"
	userHttp "github.com/davicafu/academylab/internal/user/infra/inbound/http"
	userRepo "github.com/davicafu/academylab/internal/user/infra/outbound/db/sqlrepo"
	"github.com/davicafu/academylab/pkg/logger"
	"github.com/davicafu/academylab/pkg/middleware"
	"github.com/davicafu/academylab/pkg/utils"
	"github.com/davicafu/academylab/shared/platform/persistence"
)

// ---------------- Main ----------------
func main() {
	cfg := config.MustLoad()

	logger.Init(cfg.IsProduction())
	log := logger.Logger()
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---------------- DB ----------------
	dialect, err := persistence.ParseDialect(cfg.DB.Driver)
	if err != nil {
		log.Fatal("invalid DB driver", zap.Error(err))
	}
	db, err := infraDB.Open(ctx, dialect, cfg.DB.URL)
	if err != nil {
		log.Fatal("failed to open database", zap.String("driver", string(dialect)), zap.Error(err))
	}
	defer db.Close()
	log.Info("✅ Base de datos lista", zap.String("driver", string(dialect)))

	users := userRepo.NewUserRepo(db, dialect)
	courses := courseRepo.NewCourseRepo(db, dialect)
	batches := batchRepo.NewBatchRepo(db, dialect)

	// ---------------- Adapters ----------------
	cache, stopCache := newCache(ctx, cfg, log)
	defer stopCache()

	uploader := newUploader(ctx, cfg, log)
	mailer := newMailer(cfg, log)
	tokens := token.NewJWTManager(cfg.JWT)

	// --------------- Servicios --------------
	authService := authApp.NewAuthService(users, tokens, cfg.Security.BcryptCost, log)
	userService := userApp.NewUserService(users, uploader, log)
	otpService := otpApp.NewOTPService(users, cache, mailer, cfg.Security.OTPTTL, cfg.Security.BcryptCost, log)
	courseService := courseApp.NewCourseService(courses, batches, cache, uploader, cfg.Redis.CacheTTL, log)
	batchService := batchApp.NewBatchService(batches, courses, log)

	// ---------------- Events ---------------
	publisher, closeBus := startEventBus(ctx, cfg, log,
		userEvents.NewUserConsumer(mailer, log),
		courseEvents.NewCourseConsumer(users, mailer, log),
	)
	defer closeBus()

	// ------------ Outbox Worker ------------
	worker := infraRelayer.NewOutboxWorker(infraDB.NewOutboxRepo(db, dialect), publisher, eventRegistry(),
		cfg.Outbox.Period, cfg.Outbox.Limit, log)
	go worker.Start(ctx)

	// ---------------- HTTP ----------------
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.RegisterJSONFieldNames()

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.ErrorHandler(log, cfg.IsProduction()),
	)
	router.NoRoute(middleware.NotFound())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "LMS API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	maxUpload := cfg.MaxUploadMB << 20
	gate := authHttp.NewGate(tokens, users)
	api := router.Group("/api/v1")

	authHttp.RegisterAuthRoutes(api, authHttp.NewAuthHandler(authService, authHttp.CookieConfig{
		Secure:     cfg.IsProduction(),
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	}))
	otpHttp.RegisterOTPRoutes(api, otpHttp.NewOTPHandler(otpService))
	userHttp.RegisterUserRoutes(api, userHttp.NewUserHandler(userService, maxUpload), gate)
	courseHttp.RegisterCourseRoutes(api, courseHttp.NewCourseHandler(courseService, maxUpload), gate)
	batchHttp.RegisterBatchRoutes(api, batchHttp.NewBatchHandler(batchService), gate)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("🚀 Server running", zap.String("url", "http://localhost:"+cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("🛑 Apagando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
