package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v10"
	"github.com/cockroachdb/errors"
	"github.com/imroc/req/v3"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/metrics"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/notifications"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/printer"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/reminders"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/repo"
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

	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("app", "reminders").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = logger.WithContext(ctx)

	if err = NewRootCommand(setupFromConfig(cfg)).ExecuteContext(ctx); err != nil {
		logger.Fatal().Err(err).Msg("reminders failed")
	}
}

func setupFromConfig(cfg Config) SetupFunc {
	return func(ctx context.Context) (*App, error) {
		location, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid timezone %q", cfg.Timezone)
		}

		db, err := repo.Open(cfg.PostgresConnectionString, cfg.PostgresSchema)
		if err != nil {
			return nil, err
		}

		if err = repo.Migrate(db); err != nil {
			return nil, errors.Wrap(err, "failed to migrate")
		}

		dataRepo := repo.New(db)
		appMetrics := metrics.Registry(cfg.MetricsNamespace)

		channel := whatsapp.NewClient(
			cfg.WhatsAppAccessToken,
			cfg.WhatsAppPhoneNumberID,
			cfg.WhatsAppGraphURL,
			cfg.WhatsAppAPIVersion,
			req.C().SetTimeout(cfg.ChannelTimeout),
		)

		zerolog.Ctx(ctx).Debug().Str("timezone", location.String()).Msg("sweep dependencies ready")

		return &App{
			Sweeper: reminders.NewSweeper(
				dataRepo,
				notifications.NewReplySender(channel, dataRepo, appMetrics),
				printer.NewPrinter(cfg.RegistrationURL),
				location,
				appMetrics,
			),
			Location: location,
			Schedule: cfg.ReminderSchedule,
			Now:      time.Now,
		}, nil
	}
}
