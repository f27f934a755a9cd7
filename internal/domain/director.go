package domain

import (
	"context"
	"time"
)

type Director struct {
	ID        int
	FirstName string
	LastName  string
	BirthDate *time.Time
	ImageKey  *string
	Movies    []Movie
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d *Director) FullName() string {
	return d.FirstName + " " + d.LastName
}

// DirectorUpdate holds the mutable attributes of a director. A nil ImageKey
// keeps the current image.
type DirectorUpdate struct {
	FirstName string
	LastName  string
	BirthDate *time.Time
	ImageKey  *string
}

type DirectorRepository interface {
	GetAll(ctx context.Context) ([]Director, error)
	GetById(ctx context.Context, id int) (*Director, error)
	ExistsByName(ctx context.Context, firstName, lastName string) (bool, error)
	Create(ctx context.Context, director *Director) error
	Update(ctx context.Context, id int, upd DirectorUpdate) (*Director, *string, error)
	// Delete removes the director and its movies. It returns the deleted
	// director and the image keys of everything removed.
	Delete(ctx context.Context, id int) (*Director, []string, error)
}

// DirectorCache keeps director details, including their movies, between
// requests. Get returns ErrRecordNotFound on a miss.
type DirectorCache interface {
	Get(ctx context.Context, id int) (*Director, error)
	Set(ctx context.Context, director *Director) error
	Evict(ctx context.Context, id int) error
}
