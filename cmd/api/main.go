package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/care-scheduler/internal/auth"
	"github.com/BruksfildServices01/care-scheduler/internal/config"
	"github.com/BruksfildServices01/care-scheduler/internal/identity"
	"github.com/BruksfildServices01/care-scheduler/internal/logger"
	"github.com/BruksfildServices01/care-scheduler/internal/metrics"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/routes"
	"github.com/BruksfildServices01/care-scheduler/internal/session"
	"github.com/BruksfildServices01/care-scheduler/internal/validators"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "care-scheduler",
		Short:        "Appointment booking API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads and validates the configuration and builds the logger.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.Env)

	if err := cfg.Validate(); err != nil {
		return nil, log, err
	}
	return cfg, log, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}()

	if err := st.migrate(ctx); err != nil {
		return err
	}

	var revocations *session.RedisRevocations
	if cfg.RedisURL != "" {
		client, err := session.Open(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		revocations = session.NewRedisRevocations(client)
		log.Info().Msg("session revocation enabled")
	} else {
		log.Warn().Msg("REDIS_URL not set; logout will not revoke tokens")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Dependencies{
		Config:       cfg,
		Log:          log,
		Appointments: st.appointments,
		Users:        st.users,
		AuditStore:   st.audit,
		Revocations:  revocations,
		Metrics:      metrics.New(reg),
		Gatherer:     reg,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("store", cfg.StoreDriver).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables (postgres) or indexes (mongo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			st, err := openStores(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer st.close(context.Background())

			if err := st.migrate(cmd.Context()); err != nil {
				return err
			}

			log.Info().Str("store", cfg.StoreDriver).Msg("migration complete")
			return nil
		},
	}
}

// createAdminCmd seeds an admin account. Admins cannot register over HTTP.
func createAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			email = strings.ToLower(strings.TrimSpace(email))
			if ok, reason := validators.ValidateEmail(email); !ok {
				return errors.New(reason)
			}
			if len(password) < 6 {
				return errors.New("password must have at least 6 characters")
			}

			cfg, log, err := setup()
			if err != nil {
				return err
			}

			st, err := openStores(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer st.close(context.Background())

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			u := &models.User{
				FullName:     name,
				Email:        email,
				PasswordHash: hash,
				Role:         string(identity.RoleAdmin),
			}
			if err := st.users.CreateUser(cmd.Context(), u); err != nil {
				return err
			}

			log.Info().Str("user_id", u.ID).Str("email", u.Email).Msg("admin created")
			return nil
		},
	}
	cmd.Flags().String("name", "Administrator", "Full name")
	cmd.Flags().String("email", "", "Login email")
	cmd.Flags().String("password", "", "Login password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
