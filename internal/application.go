package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/boardgames-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgames-backend/internal/config"
	"github.com/rocketscienceinc/boardgames-backend/internal/console"
	"github.com/rocketscienceinc/boardgames-backend/internal/metrics"
	"github.com/rocketscienceinc/boardgames-backend/internal/repository"
	"github.com/rocketscienceinc/boardgames-backend/internal/repository/storage"
	"github.com/rocketscienceinc/boardgames-backend/internal/usecase"
)

// RunApp - runs the line protocol on in/out until quit, end of input or a signal.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	repo, closeRepo, err := newSessionRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	stats := metrics.New()
	manager := usecase.NewSessionManager(logger, repo, stats, conf.Games.DefaultGoSize)
	shell := console.New(logger, manager, stats, out)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigs)

		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-gctx.Done():
		}

		return nil
	})

	g.Go(func() error {
		defer cancel()

		log.Info("Starting console", "storage", conf.Storage.Driver)
		if runErr := shell.Run(gctx, in); runErr != nil {
			return fmt.Errorf("console error: %w", runErr)
		}

		return nil
	})

	if err = g.Wait(); err != nil {
		return err
	}

	log.Info("Application stopped")

	return nil
}

// ShowSession loads a stored session, rebuilds it by replay and writes its projection as JSON.
func ShowSession(ctx context.Context, logger *slog.Logger, conf *config.Config, id string, out io.Writer) error {
	log := logger.With("component", "app")

	repo, closeRepo, err := newSessionRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	manager := usecase.NewSessionManager(logger, repo, metrics.New(), conf.Games.DefaultGoSize)

	snap, err := manager.View(ctx, id)
	if err != nil {
		return fmt.Errorf("could not replay session: %w", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if err = enc.Encode(snap); err != nil {
		return fmt.Errorf("could not encode session: %w", err)
	}

	return nil
}

func newSessionRepository(
	ctx context.Context, log *slog.Logger, conf *config.Config,
) (repository.SessionRepository, func(), error) {
	switch conf.Storage.Driver {
	case config.DriverMemory:
		return repository.NewMemorySessionRepository(), func() {}, nil
	case config.DriverRedis:
		client, err := storage.NewRedis(ctx, conf.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewSessionRepository(client, conf.Redis.KeyPrefix, conf.Session.TTL), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", apperror.ErrUnknownStoreDriver, conf.Storage.Driver)
	}
}
