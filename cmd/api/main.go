package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openboards/forum-backend/internal/config"
	"github.com/openboards/forum-backend/internal/handler"
	"github.com/openboards/forum-backend/internal/middleware"
	"github.com/openboards/forum-backend/internal/migration"
	"github.com/openboards/forum-backend/internal/repository"
	"github.com/openboards/forum-backend/internal/routes"
	"github.com/openboards/forum-backend/internal/service"
	"github.com/openboards/forum-backend/internal/viewtrack"
	"github.com/openboards/forum-backend/pkg/authtoken"
	pkglogger "github.com/openboards/forum-backend/pkg/logger"
	pkgredis "github.com/openboards/forum-backend/pkg/redis"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	zlog := pkglogger.GetLogger()
	zlog.Info().Str("env", env).Strs("dotenv", dotenvFiles).Msg("starting")

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	zlog.Info().Msg("connected to MySQL")

	// Redis backs view markers and rate limiting. The API stays up
	// without it: markers fall back to the in-process store.
	var markers viewtrack.MarkerStore
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
	if err != nil {
		zlog.Warn().Err(err).Msg("redis unavailable, using in-memory view markers")
		redisClient = nil
		markers = viewtrack.NewMemoryMarkerStore(cfg.SessionTTL())
	} else {
		zlog.Info().Msg("connected to Redis")
		markers = viewtrack.NewRedisMarkerStore(redisClient, cfg.SessionTTL())
	}

	boardRepo := repository.NewBoardRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	postRepo := repository.NewPostRepository(db)

	tracker := viewtrack.New(markers, topicRepo)
	forumSvc := service.NewForumService(boardRepo, topicRepo, postRepo, tracker)
	forumHandler := handler.NewForumHandler(forumSvc)
	tokenManager := authtoken.NewManager(cfg.Auth.TokenSecret)

	if env != "local" && env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	routes.Setup(router, forumHandler, tokenManager, cfg.Session.TTLMinutes*60)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zlog.Info().Str("addr", addr).Msg("listening")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
}
