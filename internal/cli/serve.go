package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	intconfig "greenjourney/internal/config"
	intdb "greenjourney/internal/db"
	router "greenjourney/internal/http"
	"greenjourney/internal/pricing"
	"greenjourney/internal/utils"
)

const devJWTSecret = "dev-only-secret-change-me"

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts)
		},
	}
}

func runServe(ctx context.Context, opts *RootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	env := opts.loadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	if env.JWTSecret == "" {
		utils.WarnLogger.Warn("JWT_SECRET not set, using an insecure development secret")
		env.JWTSecret = devJWTSecret
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		return err
	}
	defer intconfig.CloseDB()

	if err := intdb.EnsureSchema(db); err != nil {
		return err
	}

	rdb, err := intconfig.ConnectRedis(ctx, env)
	if err != nil {
		return err
	}
	defer intconfig.CloseRedis()

	r := router.NewRouter(router.Deps{
		Env:    env,
		DB:     db,
		Redis:  rdb,
		Engine: pricing.NewEngine(pricing.NewRandSource(time.Now().UnixNano())),
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.InfoLogger.Infof("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	utils.InfoLogger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	utils.InfoLogger.Info("server stopped")
	return nil
}
