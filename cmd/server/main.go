package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/bot"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/config"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/infra"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/middleware"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/repository"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/router"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/service"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger — dev: pretty, prod: JSON
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Notification pipeline: services enqueue after commit, the worker pool
	// delivers to Telegram admin chats behind a circuit breaker.
	notifier, err := infra.NewTelegramNotifier(cfg.TelegramBotToken, cfg.AdminChatIDs())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise telegram notifier")
	}
	dispatcher := worker.NewDispatcher(rdb)
	worker.StartWorkerPool(ctx, rdb, notifier, cfg.WorkerPoolSize)

	// Telegram command bot shares the notifier's API client and reads
	// through the same services the HTTP handlers use.
	if notifier.API() != nil {
		cashboxRepo := repository.NewCashboxRepository(db)
		clientRepo := repository.NewClientRepository(db)
		paymentRepo := repository.NewPaymentRepository(db)
		policy := service.NewBonusPolicy(cfg.ReferralBonus, cfg.RefereeBonus, cfg.BonusPercent)
		tgBot := bot.New(
			notifier.API(),
			service.NewCashboxService(cashboxRepo),
			service.NewClientService(clientRepo, paymentRepo, dispatcher, policy),
		)
		go tgBot.Run(ctx)
	}

	middleware.InitMetrics()
	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("smartdokon backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
