package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/strutynskyi/movie-catalog/internal/cache"
	"github.com/strutynskyi/movie-catalog/internal/catalog"
	"github.com/strutynskyi/movie-catalog/internal/config"
	"github.com/strutynskyi/movie-catalog/internal/domain"
	"github.com/strutynskyi/movie-catalog/internal/query"
	"github.com/strutynskyi/movie-catalog/internal/repository"
	"github.com/strutynskyi/movie-catalog/internal/storage"
	appvalidator "github.com/strutynskyi/movie-catalog/internal/validator"
	"github.com/strutynskyi/movie-catalog/internal/vcs"
)

var (
	version = vcs.Version()
)

type Application struct {
	config    config.Config
	logger    *slog.Logger
	validator *validator.Validate

	movies    *catalog.MovieService
	directors *catalog.DirectorService
}

func NewApp(
	cfg config.Config,
	logger *slog.Logger,
	validator *validator.Validate,
	movies *catalog.MovieService,
	directors *catalog.DirectorService) *Application {

	return &Application{
		config:    cfg,
		logger:    logger,
		validator: validator,
		movies:    movies,
		directors: directors,
	}
}

// Services wires the catalog services over the given stores.
func Services(
	cfg config.Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	directorCache domain.DirectorCache,
	images domain.ImageStore) (*catalog.MovieService, *catalog.DirectorService) {

	movieRepo := repository.NewPostgresMovieRepository(db)
	directorRepo := repository.NewPostgresDirectorRepository(db)

	planner := query.NewPlanner(
		query.NewGate(cfg.Filtering.Enabled, cfg.Filtering.AllowedFields),
		cfg.PaginationConfig(),
	)

	directors := catalog.NewDirectorService(directorRepo, movieRepo, directorCache, images, logger)
	movies := catalog.NewMovieService(movieRepo, directors, images, planner, logger)

	return movies, directors
}

func Run(cfg config.Config) error {
	textHandler := slog.NewTextHandler(os.Stdout, nil)

	app := &Application{
		config: cfg,
		logger: slog.New(textHandler),
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	app.logger = newLogger(cfg, textHandler)
	app.validator = appvalidator.NewValidator()

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	directorCache, closeCache, err := newDirectorCache(cfg, app.logger)
	if err != nil {
		return err
	}
	defer closeCache()

	images, err := NewImageStore(context.Background(), cfg, db)
	if err != nil {
		return err
	}

	app.movies, app.directors = Services(cfg, app.logger, db, directorCache, images)

	return app.run()
}

// newDirectorCache returns a Redis backed cache, or a no-op cache when no
// Redis URL is configured.
func newDirectorCache(cfg config.Config, logger *slog.Logger) (domain.DirectorCache, func() error, error) {
	if cfg.Redis.URL == "" {
		logger.Info("redis URL not set, director cache disabled")
		return cache.NoopDirectorCache{}, func() error { return nil }, nil
	}

	rdb, err := NewRedisClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	return cache.NewRedisDirectorCache(rdb, cfg.Redis.DirectorTTL), rdb.Close, nil
}

func NewImageStore(ctx context.Context, cfg config.Config, db *pgxpool.Pool) (domain.ImageStore, error) {
	switch cfg.Images.Store {
	case config.ImageStoreMinio:
		store, err := storage.NewMinioImageStore(ctx, cfg.MinioConfig())
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return repository.NewPostgresImageStore(db), nil
	}
}

func NewRedisClient(cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg config.Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
