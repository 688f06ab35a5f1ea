package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"

	"github.com/erazemk/posest/internal/api"
	"github.com/erazemk/posest/internal/auth"
	"github.com/erazemk/posest/internal/config"
	"github.com/erazemk/posest/internal/db"
	"github.com/erazemk/posest/internal/store"
)

func serveCommand(conf *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API (initializes the database on first run)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagAddr,
				Aliases: []string{"a"},
				Usage:   "listen address",
				Value:   conf.HTTP.Address,
			},
			&cli.StringFlag{
				Name:  flagBasePath,
				Usage: "path prefix of the API routes",
				Value: conf.HTTP.BasePath,
			},
			&cli.StringFlag{
				Name:    flagAdmin,
				Aliases: []string{"u"},
				Usage:   "admin username on first run",
				Value:   conf.Auth.AdminUsername,
			},
		},
		Action: func(ctx *cli.Context) error {
			return serve(ctx, conf)
		},
	}
}

func serve(ctx *cli.Context, conf *config.Config) error {
	dbPath := ctx.String(flagDB)
	addr := ctx.String(flagAddr)

	// Check if DB exists, auto-init if not.
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		if err := initDatabase(dbPath, ctx.String(flagAdmin)); err != nil {
			return err
		}
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return errors.Wrap(err, "could not open database")
	}
	defer database.Close()

	// Ensure schema exists (idempotent).
	if err := db.EnsureSchema(database); err != nil {
		return errors.Wrap(err, "could not ensure database schema")
	}

	slog.Info("database ready", "path", dbPath)

	jwtSecret, err := store.GetJWTSecret(ctx.Context, database)
	if err != nil {
		return errors.Wrap(err, "could not load JWT secret")
	}

	pruned, err := store.PruneRevokedTokens(ctx.Context, database, time.Now())
	if err != nil {
		return errors.WithStack(err)
	}
	if pruned > 0 {
		slog.Info("pruned expired token revocations", "count", pruned)
	}

	issuer := auth.NewIssuer(jwtSecret, conf.Auth.TokenExpiry)
	router := api.NewRouter(database, issuer, api.Options{BasePath: ctx.String(flagBasePath)})

	handler := cors.New(cors.Options{
		AllowedOrigins:   conf.HTTP.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr, "base_path", ctx.String(flagBasePath))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "server error")
	}

	slog.Info("server stopped, closing database")
	return nil
}
