package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/barbearia-urbana/barberbot/bookingapi"
	"github.com/barbearia-urbana/barberbot/bot"
	"github.com/barbearia-urbana/barberbot/config"
	"github.com/barbearia-urbana/barberbot/logging"
	"github.com/barbearia-urbana/barberbot/metrics"
	"github.com/barbearia-urbana/barberbot/storage"
	"github.com/barbearia-urbana/barberbot/wizard"
	"github.com/barbearia-urbana/barberbot/worker"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logs.Level, cfg.Logs.Development)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	m := metrics.New(cfg.Metrics.ServiceName)

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		router := mux.NewRouter()
		router.Handle(cfg.Metrics.Path, m.Handler()).Methods(http.MethodGet)
		router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		}).Methods(http.MethodGet)

		metricsSrv = &http.Server{Addr: cfg.Metrics.Addr, Handler: router}
		go func() {
			sugar.Infow("metrics server listening", "addr", cfg.Metrics.Addr, "path", cfg.Metrics.Path)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				sugar.Errorw("metrics server failed", "error", err)
			}
		}()
	}

	store, err := storage.NewSQLiteStore(cfg.Storage.Path, sugar)
	if err != nil {
		sugar.Fatalw("failed to open local storage", "path", cfg.Storage.Path, "error", err)
	}
	defer store.Close()

	client := bookingapi.NewClient(bookingapi.Options{
		BaseURL:        cfg.Backend.BaseURL,
		Timeout:        time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
		RateLimitRPS:   cfg.Backend.RateLimitRPS,
		RateLimitBurst: cfg.Backend.RateLimitBurst,
		Recorder:       m,
	}, sugar)

	catalog := wizard.NewCatalog(client, sugar)
	go func() {
		// A failed load is logged inside and leaves the catalog empty; the
		// bot still starts and answers everything except the wizard.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		catalog.Load(ctx)
	}()

	b, err := bot.New(bot.Config{
		Token:    cfg.Telegram.Token,
		Debug:    cfg.Telegram.Debug,
		Catalog:  catalog,
		Backend:  client,
		Store:    store,
		Metrics:  m,
		Business: cfg.Business,
		Admins:   cfg.Telegram.AdminChatIDs,
		Log:      sugar,
	})
	if err != nil {
		sugar.Fatalw("failed to create bot", "error", err)
	}

	go func() {
		if err := b.Start(); err != nil {
			sugar.Errorw("bot stopped with error", "error", err)
		}
	}()

	var digest *worker.DigestWorker
	if cfg.Digest.Enabled && len(cfg.Telegram.AdminChatIDs) > 0 {
		digest = worker.NewDigestWorker(
			wizard.NewAdminView(client, sugar), b, cfg.Telegram.AdminChatIDs, cfg.Digest.Hour, sugar)
		digest.Start()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	sugar.Infow("shutting down", "signal", sig.String())

	if digest != nil {
		digest.Stop()
	}
	b.Stop()
	if metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(ctx); err != nil {
			sugar.Warnw("metrics server shutdown failed", "error", err)
		}
	}
	sugar.Infow("shutdown complete")
}
