package cli

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"training-center/internal/api"
	"training-center/internal/config"
	"training-center/internal/database"
	"training-center/internal/events"
	"training-center/internal/repository"
	"training-center/internal/service"
	"training-center/internal/tracing"
	"training-center/internal/validation"
)

func serveCmd(loaded func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default command)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), loaded())
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer := tracing.ShutdownFunc(tracing.Noop)
	if cfg.TracingEnabled {
		shutdown, err := tracing.InitTracerProvider(ctx, cfg.ServiceName, cfg.OtelEndpoint)
		if err != nil {
			return err
		}
		shutdownTracer = shutdown
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			slog.Error("Error shutting down tracer provider", "error", err)
		}
	}()

	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	publisher := newPublisher(cfg.NatsURL)
	if closer, ok := publisher.(interface{ Close() }); ok {
		defer closer.Close()
	}

	trainerRepo := repository.NewPostgresTrainerRepository(db)
	studentRepo := repository.NewPostgresStudentRepository(db)
	courseRepo := repository.NewPostgresCourseRepository(db)
	classRoomRepo := repository.NewPostgresClassRoomRepository(db)

	validator := validation.New()

	handlers := api.Handlers{
		Trainers:   api.NewTrainerHandler(service.NewTrainerService(trainerRepo, classRoomRepo, validator, publisher)),
		Students:   api.NewStudentHandler(service.NewStudentService(studentRepo, courseRepo, classRoomRepo, validator, publisher)),
		Courses:    api.NewCourseHandler(service.NewCourseService(courseRepo, trainerRepo, validator, publisher)),
		ClassRooms: api.NewClassRoomHandler(service.NewClassRoomService(classRoomRepo, validator, publisher)),
	}

	app := api.NewApp(api.ServerOptions{
		ServiceName:         cfg.ServiceName,
		JWTSecret:           cfg.JWTSecret,
		CorsAllowOrigins:    cfg.CorsAllowOrigins,
		RateLimitMax:        cfg.RateLimitMax,
		RateLimitExpiration: time.Duration(cfg.RateLimitExpiration) * time.Second,
		AccessLog:           true,
	}, handlers)

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("Listening", "service", cfg.ServiceName, "port", cfg.Port)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// newPublisher connects to NATS when url is set. Events are optional, so a
// failed connection degrades to a publisher that drops them.
func newPublisher(url string) events.EventPublisher {
	if url == "" {
		slog.Info("NATS_URL not set, domain events are disabled")
		return events.NoopPublisher{}
	}

	publisher, err := events.NewNatsPublisher(url)
	if err != nil {
		slog.Warn("Failed to connect to NATS, domain events are disabled", "url", url, "error", err)
		return events.NoopPublisher{}
	}
	slog.Info("Successfully connected to NATS.", "url", url)
	return publisher
}
