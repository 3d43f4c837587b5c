package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"evenza/internal/adapters/discord"
	"evenza/internal/adapters/httpapi"
	"evenza/internal/application"
	"evenza/internal/infrastructure/i18n"
	"evenza/internal/infrastructure/metrics"
	"evenza/internal/infrastructure/ticket"
)

func newServeCmd() *cobra.Command {
	var skipMigrations bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), !skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on start")
	return cmd
}

func runServe(parent context.Context, migrate bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, migrate)
	if err != nil {
		return err
	}
	defer st.close()

	locker, closeLocker, err := newLocker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	tr := i18n.NewTranslator(cfg.DefaultLocale)
	opts := []application.Option{application.WithMetrics(metrics.New(prometheus.DefaultRegisterer))}
	if cfg.DiscordEnabled() {
		session, err := discord.NewSession(cfg.DiscordToken)
		if err != nil {
			return err
		}
		notifier := discord.NewNotifier(session, cfg.DiscordChannelID, tr, cfg.DefaultLocale)
		go notifier.Run(ctx)
		opts = append(opts, application.WithNotifier(notifier))
		log.Info().Str("channel_id", cfg.DiscordChannelID).Msg("discord notifications enabled")
	}

	handler := httpapi.NewServer(httpapi.Deps{
		Events:       application.NewEventService(st.events, st.reservations, locker, opts...),
		Reservations: application.NewReservationService(st.reservations, st.events, locker, opts...),
		Admin:        application.NewAdminService(st.events, st.reservations, opts...),
		Tickets:      application.NewTicketService(st.reservations, st.events, ticket.NewPDFRenderer(tr)),
		Translator:   tr,
		JWTSecret:    cfg.JWTSecret,
		Metrics:      promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.Store).Str("lock", cfg.LockBackend).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("http server stopped")
	return nil
}
