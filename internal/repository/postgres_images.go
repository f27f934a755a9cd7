package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/strutynskyi/movie-catalog/internal/domain"
)

// PostgresImageStore keeps image bytes in the images table.
type PostgresImageStore struct {
	db *pgxpool.Pool
}

func NewPostgresImageStore(db *pgxpool.Pool) *PostgresImageStore {
	return &PostgresImageStore{
		db: db,
	}
}

func (p *PostgresImageStore) Put(ctx context.Context, image *domain.Image) error {
	query := `INSERT INTO images (key, name, content_type, data)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET name = EXCLUDED.name, content_type = EXCLUDED.content_type, data = EXCLUDED.data`

	_, err := p.db.Exec(ctx, query, image.Key, image.Name, image.ContentType, image.Data)

	return err
}

func (p *PostgresImageStore) Get(ctx context.Context, key string) (*domain.Image, error) {
	query := `SELECT key, name, content_type, data FROM images WHERE key = $1`

	var image domain.Image

	err := p.db.QueryRow(ctx, query, key).Scan(&image.Key, &image.Name, &image.ContentType, &image.Data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrImageNotFound
		}
		return nil, err
	}

	return &image, nil
}

func (p *PostgresImageStore) Delete(ctx context.Context, key string) error {
	_, err := p.db.Exec(ctx, `DELETE FROM images WHERE key = $1`, key)

	return err
}
