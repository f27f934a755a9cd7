package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/strutynskyi/movie-catalog/internal/app"
	"github.com/strutynskyi/movie-catalog/internal/cache"
	"github.com/strutynskyi/movie-catalog/internal/config"
	"github.com/strutynskyi/movie-catalog/internal/repository"
	appvalidator "github.com/strutynskyi/movie-catalog/internal/validator"
)

type TestApp struct {
	App   *app.Application
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func newTestApp(cfg config.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	directorCache := cache.NewRedisDirectorCache(redisClient, cfg.Redis.DirectorTTL)
	images := repository.NewPostgresImageStore(db)

	movies, directors := app.Services(cfg, logger, db, directorCache, images)

	application := app.NewApp(cfg, logger, validator, movies, directors)

	return &TestApp{
		App:   application,
		DB:    db,
		Redis: redisClient,
	}, nil
}

func (a *TestApp) Close() {
	a.Redis.Close()
	a.DB.Close()
}
