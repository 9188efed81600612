package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/vidsync/config"
	_ "github.com/d60-Lab/vidsync/docs"
	"github.com/d60-Lab/vidsync/internal/api/handler"
	"github.com/d60-Lab/vidsync/internal/api/middleware"
)

// NewRouter 注册全部路由与中间件
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(
		otelgin.Middleware("vidsync"),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst),
	)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	v1 := r.Group("/api/v1")
	{
		videos := v1.Group("/videos")
		{
			videos.GET("/feed", h.Feed)
			videos.GET("/search", h.Search)
			videos.GET("/liked", h.Liked)
			videos.GET("/favorites", h.Favorites)
			videos.GET("/:id", h.VideoDetail)
			videos.GET("/:id/related", h.Related)
			videos.POST("/:id/like", h.Like)
			videos.POST("/:id/favorite", h.Favorite)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", h.Categories)
			categories.GET("/selected", h.SelectedCategories)
			categories.GET("/:id/videos", h.VideosByCategory)
			categories.POST("/:id/select", h.SelectCategory)
		}

		users := v1.Group("/users")
		{
			users.GET("/followed", h.FollowedUsers)
			users.GET("/:id", h.UserInfo)
			users.POST("/:id/follow", h.FollowUser)
		}

		history := v1.Group("/history", middleware.RequireUser(cfg.Auth.JWTSecret))
		{
			history.GET("", h.History)
			history.GET("/recent", h.RecentHistory)
			history.GET("/:videoId", h.Progress)
			history.POST("/progress", h.UpdateProgress)
			history.DELETE("", h.ClearHistory)
		}

		v1.POST("/admin/purge", h.Purge)
	}

	return r
}
