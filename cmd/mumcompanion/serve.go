package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/tbourn/newmum-companion/internal/config"
	httpapi "github.com/tbourn/newmum-companion/internal/http"
	"github.com/tbourn/newmum-companion/internal/observability"
	"github.com/tbourn/newmum-companion/internal/repo"
)

const (
	shutdownTimeout = 15 * time.Second
	connectTimeout  = 10 * time.Second
)

// backend is an opened document store plus the hook that releases it.
type backend struct {
	deps  httpapi.Deps
	close func(context.Context) error
}

// openBackend opens the store selected by cfg.Store.Driver. SQL stores are
// migrated on open and carry the idempotency key store; Mongo does not.
func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	if cfg.Store.Driver == config.StoreMongo {
		cctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		ms, err := repo.OpenMongo(cctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return &backend{deps: httpapi.Deps{Store: ms}, close: ms.Close}, nil
	}

	db, err := repo.OpenSQL(cfg.Store)
	if err != nil {
		return nil, err
	}
	closeDB := func(context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			_ = closeDB(ctx)
			return nil, err
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		_ = closeDB(ctx)
		return nil, err
	}
	return &backend{
		deps: httpapi.Deps{
			Store: repo.NewSQLStore(db),
			Idem:  repo.IdempotencyStore{DB: db},
		},
		close: closeDB,
	}, nil
}

// newServer builds the Gin engine and wraps it in an http.Server with the
// configured timeouts.
func newServer(cfg config.Config, deps httpapi.Deps) *http.Server {
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, deps, cfg)

	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, appVersion(),
		attribute.String("store.backend", cfg.Store.Driver))
	if err != nil {
		return err
	}

	be, err := openBackend(ctx, cfg)
	if err != nil {
		_ = shutdownOTel(context.Background())
		return err
	}

	srv := newServer(cfg, be.deps)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("store", cfg.Store.Driver).
			Str("version", appVersion()).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(
			srv.Shutdown(sctx),
			be.close(sctx),
			shutdownOTel(sctx),
		)
	})

	return g.Wait()
}

func (a *app) migrate(ctx context.Context) error {
	if a.cfg.Store.Driver == config.StoreMongo {
		log.Info().Msg("mongo collections are created on first write; nothing to migrate")
		return nil
	}
	be, err := openBackend(ctx, a.cfg)
	if err != nil {
		return err
	}
	log.Info().Str("driver", a.cfg.Store.DBDriver).Msg("schema up to date")
	return be.close(ctx)
}
