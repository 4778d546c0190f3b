package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ctfpractice/config"
	"ctfpractice/database"
	"ctfpractice/metrics"
	"ctfpractice/routes"
	"ctfpractice/services"
	"ctfpractice/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := utils.NewLogger(cfg.App.Name, cfg.App.LogLevel)
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}
	if cfg.Database.AutoMigrate {
		if err := database.MigrateTables(db); err != nil {
			log.WithError(err).Fatal("failed to migrate tables")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		rdb      *redis.Client
		notifier services.Notifier = services.NopNotifier{}
	)
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(ctx, cfg.Redis)
		if err != nil {
			log.WithError(err).Fatal("failed to connect redis")
		}
		defer rdb.Close()
		notifier = services.NewRedisNotifier(rdb, cfg.Redis.Channel)
	}

	m := metrics.NewMetrics("ctfpractice")
	leaderboard := services.NewLeaderboardService(db, rdb, cfg.Leaderboard.CacheTTL,
		cfg.Leaderboard.DefaultLimit, cfg.Leaderboard.MaxLimit, log)

	r := routes.SetupRouter(routes.Deps{
		Config:      cfg,
		Logger:      log,
		Metrics:     m,
		Tokens:      utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Submissions: services.NewSubmissionService(db, notifier, leaderboard, m, log),
		Profiles:    services.NewProfileService(db, log),
		Challenges:  services.NewChallengeService(db, log),
		Leaderboard: leaderboard,
		Contests:    services.NewContestService(db),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":        srv.Addr,
			"trust_model": cfg.Auth.TrustModel,
		}).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to run server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
