package app

import (
	"context"
	"errors"
	"fmt"
	"learnpath_backend/internal/config"
	"learnpath_backend/internal/controller"
	"learnpath_backend/internal/generation"
	"learnpath_backend/internal/middleware"
	"learnpath_backend/internal/repository"
	"learnpath_backend/internal/service"
	"learnpath_backend/internal/util"
	"learnpath_backend/pkg/cache"
	"learnpath_backend/pkg/database"
	"learnpath_backend/pkg/logger"
	"learnpath_backend/pkg/monitoring"
	"learnpath_backend/pkg/security"
	"learnpath_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Generator is everything the API asks of the generation service.
type Generator interface {
	service.RoadmapGenerator
	service.ContentGenerator
	service.QuizGenerator
}

// Dependencies are the external resources an App is built on. Redis is optional.
type Dependencies struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Generator Generator
}

type App struct {
	Config  *config.Config
	Router  *gin.Engine
	DB      *gorm.DB
	Redis   *redis.Client
	Origins *security.OriginList

	tracer          *sdktrace.TracerProvider
	cancel          context.CancelFunc
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	roadmap       *repository.RoadmapRepository
	moduleContent *repository.ModuleContentRepository
	quiz          *repository.QuizRepository
}

type services struct {
	auth    *service.AuthService
	user    *service.UserService
	roadmap *service.RoadmapService
	content *service.ContentService
	quiz    *service.QuizService
	archive *service.ArchiveService
}

type controllers struct {
	auth    *controller.AuthController
	user    *controller.UserController
	roadmap *controller.RoadmapController
	content *controller.ContentController
	quiz    *controller.QuizController
	health  *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		roadmap:       repository.NewRoadmapRepository(db),
		moduleContent: repository.NewModuleContentRepository(db),
		quiz:          repository.NewQuizRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, deps Dependencies) (*services, error) {
	s := &services{}

	archive, err := service.NewArchiveService(cfg)
	if err != nil {
		return nil, fmt.Errorf("init archive: %w", err)
	}
	s.archive = archive

	var topicCache cache.TopicCache = cache.Nop{}
	if deps.Redis != nil {
		topicCache = cache.NewRedisCache(deps.Redis, cfg.Redis.TTL)
	}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.roadmap = service.NewRoadmapService(
		repos.roadmap,
		repos.user,
		deps.Generator,
		s.archive,
		cfg.Generation.MaxModules,
		cfg.Generation.MaxSubModules,
	)
	s.content = service.NewContentService(repos.moduleContent, topicCache, deps.Generator, s.archive)
	s.quiz = service.NewQuizService(repos.quiz, topicCache, deps.Generator, s.archive)

	return s, nil
}

func (a *App) initControllers(s *services, deps Dependencies) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth),
		user:    controller.NewUserController(s.user),
		roadmap: controller.NewRoadmapController(s.roadmap),
		content: controller.NewContentController(s.content),
		quiz:    controller.NewQuizController(s.quiz),
		health:  controller.NewHealthController(deps.DB, deps.Redis),
	}
}

func (a *App) setupMiddlewares(ctx context.Context, router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(security.CORS(a.Origins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.AccessLog())
}

// NewApp connects to the configured database, Redis and generation service
// and builds the HTTP application on top of them.
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}

	gen, err := generation.NewClient(cfg.Generation)
	if err != nil {
		return nil, fmt.Errorf("init generation client: %w", err)
	}

	deps := Dependencies{DB: db, Redis: rdb, Generator: gen}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db, Redis: rdb}, nil
	}
	return New(cfg, deps)
}

// New builds the application on already opened dependencies.
func New(cfg *config.Config, deps Dependencies) (*App, error) {
	if deps.DB == nil || deps.Generator == nil {
		return nil, errors.New("app needs a database and a generator")
	}

	util.RegisterValidators()
	monitoring.Init()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config:  cfg,
		DB:      deps.DB,
		Redis:   deps.Redis,
		Origins: security.NewOriginList(cfg.CORS.AllowedOrigins),
		cancel:  cancel,
	}

	repos := app.initRepositories(deps.DB)
	services, err := app.initServices(repos, cfg, deps)
	if err != nil {
		cancel()
		return nil, err
	}
	controllers := app.initControllers(services, deps)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("learnpath-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("init tracing: %w", err)
		}
		app.tracer = tp
	}

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.New()
	// Topics such as "Input/Output" arrive as one escaped path segment.
	router.UseRawPath = true
	router.UnescapePathValues = true
	router.NoRoute(func(c *gin.Context) {
		util.NotFound(c, "route not found")
	})
	app.Router = router

	app.setupMiddlewares(ctx, router, cfg)
	app.registerRoutes(router, controllers, repos, cfg)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
		app.Origins.Set(newCfg.CORS.AllowedOrigins)
	})

	return app, nil
}

func ginMode(mode string) string {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.DebugMode
	}
}

// RegisterConfigCallback adds a function run on every config reload.
func (a *App) RegisterConfigCallback(fn func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, fn)
}

// ReloadConfig hands a freshly loaded config to every registered callback.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
}

// Close stops background work and flushes traces.
func (a *App) Close(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}
	if err := tracing.Shutdown(ctx, a.tracer); err != nil {
		logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		a.Close(context.Background())
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(ctx)
	a.Close(ctx)
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}
