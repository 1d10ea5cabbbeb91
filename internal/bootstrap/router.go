package bootstrap

import (
	"database/sql"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker-backend/config"
	httpapi "github.com/GoSim-25-26J-441/project-tracker-backend/internal/api/http"
	apimw "github.com/GoSim-25-26J-441/project-tracker-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/api/http/respond"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth"
	authmw "github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth/middleware"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/notifications/events"
	notifhttp "github.com/GoSim-25-26J-441/project-tracker-backend/internal/notifications/http"
	notifrepo "github.com/GoSim-25-26J-441/project-tracker-backend/internal/notifications/repository"
	notifsvc "github.com/GoSim-25-26J-441/project-tracker-backend/internal/notifications/service"
	projhttp "github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects/http"
	projrepo "github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects/repository"
	projsvc "github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects/service"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/users"
)

type RouterDeps struct {
	Config *config.Config
	Log    *zap.Logger
	SQL    *sql.DB
	Pool   *pgxpool.Pool // health only; may be nil
	Redis  *redis.Client // nil disables events and the stream
	// Verifier authenticates bearer tokens. Nil selects X-User-Id header auth.
	Verifier authmw.TokenVerifier
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config
	log := dep.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimw.RequestID(log))
	r.Use(cors.New(corsConfig(cfg.HTTP.CORSAllowedOrigins)))

	healthHandler := httpapi.NewHealthHandler(cfg.App.ServiceName, cfg.App.Version, dep.Pool, dep.Redis)
	healthHandler.RegisterRoutes(r)

	userRepo := users.NewRepo(dep.SQL)
	projectRepo := projrepo.NewProjectRepository(dep.SQL)
	pinRepo := projrepo.NewPinRepository(dep.SQL)
	clearRepo := projrepo.NewClearRepository(dep.SQL)
	notificationRepo := notifrepo.NewNotificationRepository(dep.SQL)

	var (
		publisher  events.Publisher = events.NopPublisher{}
		subscriber *events.Subscriber
	)
	if dep.Redis != nil {
		publisher = events.NewRedisPublisher(dep.Redis)
		subscriber = events.NewSubscriber(dep.Redis, log)
	}

	errs := respond.NewErrors(log, !cfg.IsProduction())

	projectService := projsvc.NewProjectService(projectRepo, pinRepo, notificationRepo, clearRepo, log)
	notificationService := notifsvc.NewNotificationService(notificationRepo, publisher, log)

	api := r.Group("/api")
	if dep.Verifier != nil {
		api.Use(authmw.Authenticate(dep.Verifier, userRepo, log))
	} else {
		log.Warn("using X-User-Id header authentication; do not expose this instance")
		api.Use(authmw.HeaderUser(userRepo, log))
	}
	limiter := apimw.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
	api.Use(limiter.Middleware(auth.UserID))

	projhttp.New(projectService, errs).Register(api.Group("/projects"), authmw.AdminKey(cfg.Auth.AdminAPIKey))
	notifhttp.New(notificationService, subscriber, errs).Register(api.Group("/notifications"))

	return r
}

func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-User-Id", "X-API-Key", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	return cc
}
