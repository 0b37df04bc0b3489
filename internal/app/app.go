package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cybersafe_backend/internal/config"
	"cybersafe_backend/internal/content"
	"cybersafe_backend/internal/controller"
	"cybersafe_backend/internal/repository"
	"cybersafe_backend/internal/service"
	"cybersafe_backend/pkg/database"
	"cybersafe_backend/pkg/logger"
	"cybersafe_backend/pkg/monitoring"
	"cybersafe_backend/pkg/security"
	"cybersafe_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Seed   *content.Seed
}

type repositories struct {
	question *repository.QuestionRepository
	module   *repository.ModuleRepository
	session  *repository.SessionRepository
	answer   *repository.AnswerRepository
	admin    *repository.AdminRepository
	audit    *repository.AuditRepository
	feedback *repository.FeedbackRepository
}

type services struct {
	progress    *service.ProgressService
	course      *service.CourseService
	game        *service.GameService
	feedback    *service.FeedbackService
	certificate *service.CertificateService
	auth        *service.AuthService
	admin       *service.AdminService
	storage     *service.StorageService
}

type controllers struct {
	course *controller.CourseController
	game   *controller.GameController
	auth   *controller.AuthController
	admin  *controller.AdminController
	health *controller.HealthController
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		question: repository.NewQuestionRepository(db),
		module:   repository.NewModuleRepository(db),
		session:  repository.NewSessionRepository(db),
		answer:   repository.NewAnswerRepository(db),
		admin:    repository.NewAdminRepository(db),
		audit:    repository.NewAuditRepository(db),
		feedback: repository.NewFeedbackRepository(db),
	}
}

func initServices(repos *repositories, cfg *config.Config, seed *content.Seed, db *gorm.DB) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.progress = service.NewProgressService(repos.session)
	s.course = service.NewCourseService(repos.module, repos.question, repos.session, repos.answer, s.progress, seed, db)
	s.game = service.NewGameService(repos.module, repos.session, repos.answer, seed, db)
	s.feedback = service.NewFeedbackService(repos.feedback)
	s.certificate = service.NewCertificateService()
	s.auth = service.NewAuthService(repos.admin, repos.audit, cfg)
	s.admin = service.NewAdminService(repos.question, repos.module, repos.session, repos.answer, repos.audit, cfg)

	return s
}

func initControllers(s *services, cfg *config.Config, db *gorm.DB) *controllers {
	return &controllers{
		course: controller.NewCourseController(s.course, s.feedback, s.certificate),
		game:   controller.NewGameController(s.game),
		auth:   controller.NewAuthController(s.auth, cfg),
		admin:  controller.NewAdminController(s.admin, s.storage),
		health: controller.NewHealthController(db),
	}
}

func setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = 15 * time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 300
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)

	seed, err := content.Load(cfg.Content.SeedPath)
	if err != nil {
		return nil, err
	}
	if errs := content.ValidateSeed(seed); len(errs) > 0 {
		for _, e := range errs {
			logger.Log.Error("seed content is invalid", zap.Error(e))
		}
		return nil, errs[0]
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := database.SeedContent(db, seed, cfg.ForceSeed); err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: db, Seed: seed}
	if cfg.MigrateOnly {
		return app, nil
	}

	repos := initRepositories(db)
	services := initServices(repos, cfg, seed, db)
	controllers := initControllers(services, cfg, db)

	if err := services.auth.EnsureBootstrapAdmin(); err != nil {
		return nil, err
	}

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("cybersafe", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Error("failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app, nil
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Info("server exiting")
}
