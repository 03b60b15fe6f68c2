package main

import (
	"context"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxishq/praxis/modules"
	"github.com/praxishq/praxis/pkg/application"
	"github.com/praxishq/praxis/pkg/configuration"
	"github.com/praxishq/praxis/pkg/eventbus"
	"github.com/praxishq/praxis/pkg/httpapi"
	"github.com/praxishq/praxis/pkg/logging"
	"github.com/praxishq/praxis/pkg/metrics"
	"github.com/praxishq/praxis/pkg/middleware"
	"github.com/praxishq/praxis/pkg/server"
)

func main() {
	conf := configuration.Use()
	logger := conf.Logger()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.WithError(err).Fatal("database is unreachable")
	}

	if conf.OpenTelemetry.Enabled {
		cleanup := logging.SetupTracing(ctx, conf.OpenTelemetry.ServiceName, conf.OpenTelemetry.TempoURL)
		defer cleanup()
	}

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app); err != nil {
		logger.WithError(err).Fatal("failed to load modules")
	}
	if err := app.Migrations().Apply(ctx); err != nil {
		logger.WithError(err).Fatal("failed to apply migrations")
	}

	app.RegisterMiddleware(
		middleware.WithPool(pool),
		middleware.RequestLogger(logger, conf.RequestIDHeader),
	)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	srv := server.NewHTTPServer(
		app,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found", nil)
		}),
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
		}),
	)

	logger.WithField("address", conf.SocketAddress).Info("server listening")
	if err := srv.Start(conf.SocketAddress); err != nil {
		logger.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}
