package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/strutynskyi/movie-catalog/internal/query"
)

type Movie struct {
	ID           int
	Title        string
	Genre        string
	ReleaseDate  time.Time
	Duration     int
	Rating       decimal.Decimal
	DirectorID   int
	DirectorName string
	ImageKey     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MovieUpdate holds the mutable attributes of a movie. A nil ImageKey keeps
// the current image.
type MovieUpdate struct {
	Title       string
	Genre       string
	ReleaseDate time.Time
	Duration    int
	Rating      decimal.Decimal
	ImageKey    *string
}

type MovieRepository interface {
	FindAll(ctx context.Context, pred query.Predicate, window query.Window) (*Page[Movie], error)
	GetById(ctx context.Context, id int) (*Movie, error)
	GetByDirector(ctx context.Context, firstName, lastName string) ([]Movie, error)
	GetByDirectorId(ctx context.Context, directorID int) ([]Movie, error)
	Create(ctx context.Context, movie *Movie) error
	// Update applies upd and returns the updated movie together with the image
	// key it replaced, if any.
	Update(ctx context.Context, id int, upd MovieUpdate) (*Movie, *string, error)
	Delete(ctx context.Context, id int) (*Movie, error)
}
