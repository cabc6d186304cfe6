package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"taxonline/internal/admin"
	"taxonline/internal/apitoken"
	"taxonline/internal/audit"
	"taxonline/internal/auth"
	"taxonline/internal/dashboard"
	"taxonline/internal/platform/config"
	"taxonline/internal/platform/httpserver"
	"taxonline/internal/platform/logger"
	"taxonline/internal/platform/metrics"
	"taxonline/internal/platform/postgres"
	platformredis "taxonline/internal/platform/redis"
	"taxonline/internal/revenue"
	"taxonline/internal/risk"
	"taxonline/internal/taxpayer"
	"taxonline/internal/transport/web"
)

// main wires the dependencies and owns the server lifecycle. Business logic
// lives in the internal services packages.
func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connect failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}

	var sessionStore auth.SessionStore
	var lockoutStore auth.LockoutStore
	var sessionHealth web.SessionHealth
	if redisClient != nil {
		defer redisClient.Close()
		sessionStore = auth.NewRedisSessionStore(redisClient.Client)
		lockoutStore = auth.NewRedisLockoutStore(redisClient.Client)
		sessionHealth = redisClient
	} else {
		log.Warn("redis not configured, using in-memory sessions")
		sessionStore = auth.NewMemorySessionStore()
		lockoutStore = auth.NewMemoryLockoutStore()
	}

	m := metrics.New()

	taxpayerStore := taxpayer.NewPostgres(pool)
	adminStore := admin.NewPostgres(pool)
	trail := audit.NewPostgres(pool)
	returnStore := revenue.NewPostgresReturns(pool)
	paymentStore := revenue.NewPostgresPayments(pool)
	assessmentStore := revenue.NewPostgresAssessments(pool)
	noticeStore := revenue.NewPostgresNotices(pool)
	auditCaseStore := risk.NewPostgres(pool)

	sessions := auth.NewManager(sessionStore, cfg.SessionCookie, cfg.SessionTTL)
	lockouts := auth.NewLockout(lockoutStore, auth.DefaultLockoutPolicy(), log)
	logins := auth.NewService(taxpayerStore, taxpayerStore, adminStore, trail, lockouts, m, log)
	taxpayerSvc := taxpayer.NewService(taxpayerStore, trail, log)
	adminSvc := admin.NewService(adminStore, trail, log)
	dashboards := dashboard.NewService(taxpayerStore, returnStore, paymentStore, assessmentStore, noticeStore, auditCaseStore, m)
	tokens := apitoken.NewService(cfg.JWTSigningKey, cfg.TokenTTL)

	renderer, err := web.NewRenderer(log, m)
	if err != nil {
		log.Error("template parse failed", "error", err)
		os.Exit(1)
	}

	handler := web.NewHandler(web.HandlerDeps{
		Renderer:   renderer,
		Sessions:   sessions,
		Logins:     logins,
		Taxpayers:  taxpayerSvc,
		Admins:     adminSvc,
		Dashboards: dashboards,
		Returns:    returnStore,
		Payments:   paymentStore,
		Notices:    noticeStore,
		Register:   taxpayerStore,
		Tokens:     tokens,
		DB:         pool,
		SessionDB:  sessionHealth,
		Metrics:    m,
		Logger:     log,
	})

	srv := httpserver.New(cfg.Addr, handler.NewRouter())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting taxonline", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
