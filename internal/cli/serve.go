package cli

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Vovarama1992/memo_coach/internal/config"
	"github.com/Vovarama1992/memo_coach/internal/delivery"
	"github.com/Vovarama1992/memo_coach/internal/domain"
	"github.com/Vovarama1992/memo_coach/internal/error_notificator"
	"github.com/Vovarama1992/memo_coach/internal/evaluation"
	"github.com/Vovarama1992/memo_coach/internal/infra"
	"github.com/Vovarama1992/memo_coach/internal/ports"
	"github.com/Vovarama1992/memo_coach/internal/report"
	"github.com/Vovarama1992/memo_coach/internal/session"
	"github.com/Vovarama1992/memo_coach/internal/speech"
)

const (
	sweepEvery      = 10 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(parent context.Context, configPath, portFlag string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if portFlag != "" {
		cfg.Server.Port = portFlag
	}
	sessionTTL := config.Duration(cfg.Session.TTL, 2*time.Hour)

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// AI PROVIDER
	// =========================================================================

	prov, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}
	log.Printf("[serve] ai provider: %s", prov.Name())

	evaluator := evaluation.NewClient(prov, config.Duration(cfg.Timeouts.Evaluate, 120*time.Second))
	extractor := newExtractor(prov, cfg)
	reporter := report.NewClient(prov, config.Duration(cfg.Timeouts.Report, 60*time.Second))
	tts := speech.NewService(prov, config.Duration(cfg.Timeouts.TTS, 30*time.Second))

	// =========================================================================
	// SESSION STORE
	// =========================================================================

	var store session.Store
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		store = session.NewRedisStore(rdb, sessionTTL)
		log.Printf("[serve] sessions in redis %s, ttl %s", cfg.Redis.Addr, sessionTTL)
	} else {
		store = session.NewMemoryStore()
		log.Printf("[serve] sessions in memory, idle ttl %s", sessionTTL)
	}

	// =========================================================================
	// OPTIONAL INFRASTRUCTURE: POSTGRES / S3 / TELEGRAM
	// =========================================================================

	var (
		journal  ports.AttemptJournal
		authRepo ports.AuthRepo = domain.StaticPassword(cfg.Auth.ParentPassword)
	)
	if cfg.Postgres.URL != "" {
		db, err := sql.Open("postgres", cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer db.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err != nil {
			return err
		}

		repo := infra.NewAttemptRepo(db)
		if err := repo.Init(ctx); err != nil {
			return err
		}
		journal = repo

		parents := infra.NewAuthRepo(db)
		if err := parents.Init(ctx, cfg.Auth.ParentPassword); err != nil {
			return err
		}
		authRepo = parents
	}

	var archive ports.Archive
	if cfg.S3.Endpoint != "" && cfg.S3.Bucket != "" {
		s3Client, err := infra.NewS3Client(ctx, infra.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
		})
		if err != nil {
			return err
		}
		archive = domain.NewArchiveService(s3Client)
	}

	var alerts error_notificator.Notificator
	if cfg.Telegram.AlertToken != "" && cfg.Telegram.AlertChatID != 0 {
		tg, err := error_notificator.NewInfra(cfg.Telegram.AlertToken, cfg.Telegram.AlertChatID)
		if err != nil {
			log.Printf("[serve] telegram alerts disabled: %v", err)
		} else {
			alerts = tg
		}
	}
	notifier := error_notificator.NewService(alerts)

	authSecret := cfg.Auth.Secret
	if authSecret == "" {
		log.Printf("[serve] AUTH_SECRET is not set, parent tokens use an empty key")
	}
	authService := domain.NewAuthService(authRepo, authSecret)

	// =========================================================================
	// SERVICES
	// =========================================================================

	sessions := session.NewService(
		store,
		session.NewHub(),
		evaluator,
		reporter,
		tts,
		journal,
		archive,
		notifier,
		zl,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	handlers := delivery.Handlers{
		Session:  delivery.NewSessionHandler(sessions, cfg.MaxUploadBytes(), zl),
		Document: delivery.NewDocumentHandler(extractor, archive, cfg.MaxUploadBytes(), zl),
		WS:       delivery.NewWSHandler(sessions),
		Auth:     delivery.NewAuthHandler(authService),
	}
	if journal != nil {
		handlers.Journal = delivery.NewJournalHandler(journal, zl)
	}
	delivery.RegisterRoutes(r, handlers, authService, cfg.Server.RateLimitMin)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	// =========================================================================
	// START
	// =========================================================================

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sessions.RunSweeper(gctx, sweepEvery, sessionTTL)
	})

	g.Go(func() error {
		log.Printf("[serve] listening on :%s, uploads up to %s", cfg.Server.Port, humanize.IBytes(uint64(cfg.MaxUploadBytes())))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("[serve] shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		sessions.Wait()
		return err
	})

	return g.Wait()
}
