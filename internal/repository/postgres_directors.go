package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/strutynskyi/movie-catalog/internal/domain"
)

const directorSelectColumns = `id, first_name, last_name, birth_date, image_key, created_at, updated_at`

type PostgresDirectorRepository struct {
	db *pgxpool.Pool
}

func NewPostgresDirectorRepository(db *pgxpool.Pool) *PostgresDirectorRepository {
	return &PostgresDirectorRepository{
		db: db,
	}
}

func (p *PostgresDirectorRepository) GetAll(ctx context.Context) ([]domain.Director, error) {
	query := `SELECT ` + directorSelectColumns + ` FROM directors ORDER BY id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	directors := []domain.Director{}

	for rows.Next() {
		director, err := scanDirector(rows)
		if err != nil {
			return nil, err
		}

		directors = append(directors, *director)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return directors, nil
}

func (p *PostgresDirectorRepository) GetById(ctx context.Context, id int) (*domain.Director, error) {
	return getDirectorById(ctx, p.db, id, false)
}

func (p *PostgresDirectorRepository) ExistsByName(ctx context.Context, firstName, lastName string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM directors WHERE first_name = $1 AND last_name = $2)`

	var exists bool

	err := p.db.QueryRow(ctx, query, firstName, lastName).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (p *PostgresDirectorRepository) Create(ctx context.Context, director *domain.Director) error {
	query := `INSERT INTO directors (first_name, last_name, birth_date, image_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := p.db.QueryRow(ctx,
		query,
		director.FirstName,
		director.LastName,
		director.BirthDate,
		director.ImageKey).Scan(&director.ID, &director.CreatedAt, &director.UpdatedAt)

	if err != nil {
		if pgErrorCode(err) == pgerrcode.UniqueViolation {
			return domain.ErrDirectorAlreadyExists
		}

		return err
	}

	return nil
}

func (p *PostgresDirectorRepository) Update(
	ctx context.Context,
	id int,
	upd domain.DirectorUpdate) (*domain.Director, *string, error) {

	var (
		director *domain.Director
		previous *string
	)

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		current, err := getDirectorById(ctx, tx, id, true)
		if err != nil {
			return err
		}
		previous = current.ImageKey

		query := `UPDATE directors
			SET first_name = $2, last_name = $3, birth_date = $4,
				image_key = COALESCE($5, image_key), updated_at = NOW()
			WHERE id = $1
			RETURNING ` + directorSelectColumns

		director, err = scanDirector(tx.QueryRow(ctx, query, id, upd.FirstName, upd.LastName, upd.BirthDate, upd.ImageKey))
		if err != nil {
			if pgErrorCode(err) == pgerrcode.UniqueViolation {
				return domain.ErrDirectorAlreadyExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if upd.ImageKey == nil {
		previous = nil
	}

	return director, previous, nil
}

func (p *PostgresDirectorRepository) Delete(ctx context.Context, id int) (*domain.Director, []string, error) {
	var (
		director  *domain.Director
		imageKeys []string
	)

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var err error

		director, err = getDirectorById(ctx, tx, id, true)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx, `DELETE FROM movies WHERE director_id = $1 RETURNING image_key`, id)
		if err != nil {
			return err
		}

		movieKeys, err := pgx.CollectRows(rows, pgx.RowTo[*string])
		if err != nil {
			return err
		}

		for _, key := range movieKeys {
			if key != nil {
				imageKeys = append(imageKeys, *key)
			}
		}

		_, err = tx.Exec(ctx, `DELETE FROM directors WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if director.ImageKey != nil {
		imageKeys = append(imageKeys, *director.ImageKey)
	}

	return director, imageKeys, nil
}

func getDirectorById(ctx context.Context, q querier, id int, forUpdate bool) (*domain.Director, error) {
	query := `SELECT ` + directorSelectColumns + ` FROM directors WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	director, err := scanDirector(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return director, nil
}

func scanDirector(row scanner) (*domain.Director, error) {
	var director domain.Director

	err := row.Scan(
		&director.ID,
		&director.FirstName,
		&director.LastName,
		&director.BirthDate,
		&director.ImageKey,
		&director.CreatedAt,
		&director.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &director, nil
}
