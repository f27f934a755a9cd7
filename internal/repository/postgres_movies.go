package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/strutynskyi/movie-catalog/internal/domain"
	"github.com/strutynskyi/movie-catalog/internal/query"
)

const movieSelectColumns = `m.id, m.title, m.genre, m.release_date, m.duration, m.rating,
	m.director_id, d.first_name || ' ' || d.last_name, m.image_key, m.created_at, m.updated_at`

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) FindAll(
	ctx context.Context,
	pred query.Predicate,
	window query.Window) (*domain.Page[domain.Movie], error) {

	var where whereClause

	condition, err := where.build(pred)
	if err != nil {
		return nil, err
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM movies m WHERE %s`, condition)

	args := where.args
	pageArgs := append(append([]any{}, args...), window.Limit(), window.Offset())

	pageQuery := fmt.Sprintf(`SELECT %s
		FROM movies m
		JOIN directors d ON d.id = m.director_id
		WHERE %s
		ORDER BY m.id
		LIMIT $%d OFFSET $%d`, movieSelectColumns, condition, len(args)+1, len(args)+2)

	batch := &pgx.Batch{}
	batch.Queue(countQuery, args...)
	batch.Queue(pageQuery, pageArgs...)

	br := p.db.SendBatch(ctx, batch)
	defer br.Close()

	var totalElements int

	err = br.QueryRow().Scan(&totalElements)
	if err != nil {
		return nil, err
	}

	rows, err := br.Query()
	if err != nil {
		return nil, err
	}

	movies, err := collectMovies(rows)
	if err != nil {
		return nil, err
	}

	return domain.NewPage(movies, totalElements, window.PageNo, window.PageSize), nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	return getMovieById(ctx, p.db, id)
}

func (p *PostgresMovieRepository) GetByDirector(ctx context.Context, firstName, lastName string) ([]domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM movies m
		JOIN directors d ON d.id = m.director_id
		WHERE d.first_name = $1 AND d.last_name = $2
		ORDER BY m.release_date, m.id`, movieSelectColumns)

	rows, err := p.db.Query(ctx, query, firstName, lastName)
	if err != nil {
		return nil, err
	}

	return collectMovies(rows)
}

func (p *PostgresMovieRepository) GetByDirectorId(ctx context.Context, directorID int) ([]domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM movies m
		JOIN directors d ON d.id = m.director_id
		WHERE m.director_id = $1
		ORDER BY m.release_date, m.id`, movieSelectColumns)

	rows, err := p.db.Query(ctx, query, directorID)
	if err != nil {
		return nil, err
	}

	return collectMovies(rows)
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (title, genre, release_date, duration, rating, director_id, image_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.Genre,
		movie.ReleaseDate,
		movie.Duration,
		toNumeric(movie.Rating),
		movie.DirectorID,
		movie.ImageKey).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)

	if err != nil {
		return translateMovieError(err)
	}

	return nil
}

func (p *PostgresMovieRepository) Update(
	ctx context.Context,
	id int,
	upd domain.MovieUpdate) (*domain.Movie, *string, error) {

	var (
		movie    *domain.Movie
		previous *string
	)

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `SELECT image_key FROM movies WHERE id = $1 FOR UPDATE`, id).Scan(&previous)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}
			return err
		}

		query := `UPDATE movies
			SET title = $2, genre = $3, release_date = $4, duration = $5, rating = $6,
				image_key = COALESCE($7, image_key), updated_at = NOW()
			WHERE id = $1`

		_, err = tx.Exec(ctx,
			query,
			id,
			upd.Title,
			upd.Genre,
			upd.ReleaseDate,
			upd.Duration,
			toNumeric(upd.Rating),
			upd.ImageKey)
		if err != nil {
			return translateMovieError(err)
		}

		movie, err = getMovieById(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if upd.ImageKey == nil {
		previous = nil
	}

	return movie, previous, nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) (*domain.Movie, error) {
	query := fmt.Sprintf(`DELETE FROM movies m
		USING directors d
		WHERE m.id = $1 AND d.id = m.director_id
		RETURNING %s`, movieSelectColumns)

	movie, err := scanMovie(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return movie, nil
}

func getMovieById(ctx context.Context, q querier, id int) (*domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM movies m
		JOIN directors d ON d.id = m.director_id
		WHERE m.id = $1`, movieSelectColumns)

	movie, err := scanMovie(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return movie, nil
}

func scanMovie(row scanner) (*domain.Movie, error) {
	var (
		movie  domain.Movie
		rating pgtype.Numeric
	)

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genre,
		&movie.ReleaseDate,
		&movie.Duration,
		&rating,
		&movie.DirectorID,
		&movie.DirectorName,
		&movie.ImageKey,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	movie.Rating = toDecimal(rating)

	return &movie, nil
}

func collectMovies(rows pgx.Rows) ([]domain.Movie, error) {
	defer rows.Close()

	movies := []domain.Movie{}

	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}

		movies = append(movies, *movie)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func translateMovieError(err error) error {
	switch pgErrorCode(err) {
	case pgerrcode.UniqueViolation:
		return domain.ErrMovieAlreadyExists
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("director: %w", domain.ErrRecordNotFound)
	default:
		return err
	}
}
