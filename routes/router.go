package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/microblog/config"
	"github.com/cppla/microblog/controllers"
	"github.com/cppla/microblog/middleware"
	"github.com/cppla/microblog/services"
	"github.com/cppla/microblog/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// access log goes to its own rolling file; the app logger is the fallback
	accessLog := utils.Logger
	if cfg.GinPath != "" {
		if gl, err := utils.NewRollingFileLogger(cfg, cfg.GinPath); err == nil {
			accessLog = gl
		} else {
			utils.Sugar.Warnf("gin log file %s unavailable, using app logger: %v", cfg.GinPath, err)
		}
	}
	r.Use(ginzap.Ginzap(accessLog, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(accessLog, false))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		// credentials cannot be combined with a wildcard origin
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.PageViewRecorder(db))
	r.Use(middleware.LoadSession())

	authController := controllers.NewAuthController(services.NewAuthService(db))
	postController := controllers.NewPostController(
		services.NewPostService(db, cfg.PostMaxLength),
		services.NewFeedService(db, cfg.FeedPageSize),
		cfg.FeedCacheTTL,
	)
	statsController := controllers.NewStatsController(db)

	r.GET("/", controllers.Home)
	r.GET("/health", controllers.Health)
	r.GET("/stats", statsController.GetStats)

	r.GET("/login", authController.LoginForm)
	r.POST("/login", middleware.RateLimitMiddleware(), authController.Login)
	r.GET("/logout", authController.Logout)
	r.GET("/session", authController.Session)

	posts := r.Group("/posts")
	posts.Use(middleware.LoginRequired())
	posts.POST("/create", postController.CreatePost)
	posts.GET("/*path", postController.ShowPosts)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "page not found")
	})

	return r
}
