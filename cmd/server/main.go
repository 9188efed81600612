package main

import (
	"context"
	"flag"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/vidsync/config"
	"github.com/d60-Lab/vidsync/internal/api"
	"github.com/d60-Lab/vidsync/internal/api/handler"
	"github.com/d60-Lab/vidsync/internal/hotcache"
	"github.com/d60-Lab/vidsync/internal/remote"
	"github.com/d60-Lab/vidsync/internal/repository"
	"github.com/d60-Lab/vidsync/internal/service"
	"github.com/d60-Lab/vidsync/pkg/database"
	"github.com/d60-Lab/vidsync/pkg/logger"
	"github.com/d60-Lab/vidsync/pkg/tracing"
)

func main() {
	cfgPath := flag.String("config", "", "path to config file (optional, env overrides apply)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.L().Fatal("sentry init", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, "vidsync", cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		logger.L().Fatal("tracing init", zap.Error(err))
	}
	defer shutdownTracing(ctx)

	db, err := database.Open(database.Options{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN})
	if err != nil {
		logger.L().Fatal("open database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.L().Fatal("migrate", zap.Error(err))
	}

	var hot *hotcache.VideoCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		hot = hotcache.NewVideoCache(rdb, cfg.Redis.TTL)
	}

	src := remote.NewClient(remote.Options{
		BaseURL: cfg.Remote.BaseURL,
		Timeout: cfg.Remote.Timeout,
		UDID:    cfg.Remote.UDID,
	})

	videoRepo := repository.NewVideoRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)
	historyRepo := repository.NewWatchHistoryRepository(db)

	videoSvc := service.NewVideoService(videoRepo, userRepo, categoryRepo, src, hot, cfg.Remote.PageSize)
	categorySvc := service.NewCategoryService(categoryRepo, src)
	userSvc := service.NewUserService(userRepo)
	historySvc := service.NewWatchHistoryService(historyRepo)

	janitor := service.NewJanitor(videoRepo, userRepo, historyRepo, service.JanitorConfig{
		Interval:      cfg.Eviction.Interval,
		VideoMaxAge:   cfg.Eviction.VideoMaxAge,
		UserMaxAge:    cfg.Eviction.UserMaxAge,
		HistoryMaxAge: cfg.Eviction.HistoryMaxAge,
	})
	stopJanitor := janitor.Start()
	defer stopJanitor(ctx)

	h := handler.New(videoSvc, categorySvc, userSvc, historySvc, janitor)
	r := api.NewRouter(cfg, h)

	logger.Info("server starting", zap.String("addr", cfg.Server.Addr))
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}
