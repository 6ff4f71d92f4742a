package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v10"
	"github.com/cockroachdb/errors"
	"github.com/imroc/req/v3"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/cache"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/dispatcher"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/duplicatecleaner"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/ledger"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/media"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/metrics"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/notifications"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/openai"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/printer"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/processor"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/repo"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/users"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/whatsapp"
)

func main() {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = logger.WithContext(ctx)

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid timezone")
	}

	db, err := repo.Open(cfg.PostgresConnectionString, cfg.PostgresSchema)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err = repo.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	dataRepo := repo.New(db)
	appMetrics := metrics.Registry(cfg.MetricsNamespace)

	var claimer duplicatecleaner.Claimer
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			UseTLS:   cfg.RedisTLS,
		})
		defer func() {
			_ = redisCache.Close()
		}()

		if pingErr := redisCache.Ping(ctx); pingErr != nil {
			logger.Warn().Err(pingErr).Msg("redis unreachable, claims will fall back to database")
		}

		claimer = redisCache
	}

	channel := whatsapp.NewClient(
		cfg.WhatsAppAccessToken,
		cfg.WhatsAppPhoneNumberID,
		cfg.WhatsAppGraphURL,
		cfg.WhatsAppAPIVersion,
		req.C().SetTimeout(cfg.ChannelTimeout),
	)
	aiClient := openai.NewClient(
		cfg.OpenAIAPIKey,
		cfg.OpenAIBaseURL,
		req.C().SetTimeout(cfg.AITimeout),
	)

	if !aiClient.Configured() {
		logger.Warn().Msg("OPENAI_API_KEY is not set, replies will be degraded")
	}

	pr := printer.NewPrinter(cfg.RegistrationURL)
	replier := notifications.NewReplySender(channel, dataRepo, appMetrics)
	extractor := media.NewExtractor(aiClient, cfg.OpenAIVisionModel)
	writer := ledger.NewWriter(dataRepo, pr, location, appMetrics)

	imageWorker := ledger.NewImageWorker(
		writer,
		dataRepo,
		channel,
		extractor,
		replier,
		cfg.ImageWorkers,
		cfg.ImageQueueSize,
		appMetrics,
	)
	// jobs queued before a shutdown signal still have to reach the user
	workerCtx := context.WithoutCancel(ctx)
	imageWorker.Start(workerCtx)

	processorSvc := processor.NewProcessor(&processor.Config{
		Repo:             dataRepo,
		DuplicateCleaner: duplicatecleaner.NewDuplicateCleaner(dataRepo, claimer, cfg.IdempotencyTTL),
		Users:            users.NewResolver(dataRepo, cfg.DefaultClientID),
		Media:            channel,
		Transcriber:      media.NewTranscriber(aiClient, cfg.OpenAITranscriptionModel, cfg.TranscriptionLanguage),
		Extractor:        extractor,
		Dispatcher:       dispatcher.NewDispatcher(aiClient, dataRepo, cfg.OpenAIChatModel, appMetrics),
		Ledger:           writer,
		ImageQueue:       imageWorker,
		Replier:          replier,
		Printer:          pr,
		Metrics:          appMetrics,
	})

	handler := NewHandler(processorSvc, channel, dataRepo, cfg.WhatsAppVerifyToken, cfg.SendAPIKey)

	srv := &http.Server{
		Handler:      NewRouter(handler, logger, promhttp.Handler()),
		Addr:         ":" + cfg.Port,
		WriteTimeout: cfg.WriteTimeout(),
		ReadTimeout:  60 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return workerCtx
		},
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")

		if srvErr := srv.ListenAndServe(); srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
			logger.Err(srvErr).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Err(err).Msg("graceful shutdown failed")
	}

	imageWorker.Stop()
}
