package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kanban/internal/app"
	"kanban/internal/engine"
	"kanban/internal/logging"
	"kanban/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
			if err != nil {
				return err
			}
			backend, err := app.OpenBackend(cmd.Context(), cfg)
			if err != nil {
				logger.WithError(err).WithField("driver", cfg.Storage.Driver).Error("storage.connect.failed")
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := backend.Close(ctx); err != nil {
					logger.WithError(err).Warn("storage.close.failed")
				}
			}()
			logger.WithField("driver", backend.Driver).Info("storage.connected")

			e := engine.New(backend, logger)
			handler, err := server.New(server.Config{
				Engine:      e,
				BasePath:    cfg.Server.BasePath,
				CORSOrigins: cfg.Server.CORSOrigins,
				Logger:      logger,
			})
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			}()
			logger.WithFields(log.Fields{
				"addr":      cfg.Server.Addr,
				"base_path": cfg.Server.BasePath,
			}).Info("Serving Kanban API (OpenAPI at /openapi.json, Swagger UI at /docs)")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("server.stopped")
			return nil
		},
	}
	cmd.Flags().String("addr", "127.0.0.1:8000", "listen address")
	cmd.Flags().String("base-path", "", "API base path")
	cmd.Flags().StringSlice("cors-origins", []string{"*"}, "allowed CORS origins")
	cmd.Flags().String("storage-driver", "mongo", "storage driver: mongo or sqlite")
	cmd.Flags().String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
	cmd.Flags().String("mongo-database", "kanaban_board", "MongoDB database name")
	cmd.Flags().String("log-level", "info", "log level")
	cmd.Flags().String("log-format", "text", "log format: text or json")
	for _, name := range []string{"addr", "base-path", "cors-origins", "storage-driver", "mongo-uri", "mongo-database", "log-level", "log-format"} {
		_ = viper.BindPFlag(name, cmd.Flags().Lookup(name))
	}
	return cmd
}
