package repository

import (
	"fmt"
	"strings"

	"github.com/strutynskyi/movie-catalog/internal/query"
)

var movieColumns = map[query.Field]string{
	query.FieldGenre:       "m.genre",
	query.FieldRating:      "m.rating",
	query.FieldReleaseDate: "m.release_date",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereClause translates a predicate into a parameterised SQL condition over
// the movies table aliased as "m". Placeholders are numbered after the
// arguments already present in args.
type whereClause struct {
	args []any
}

func (w *whereClause) bind(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereClause) build(pred query.Predicate) (string, error) {
	switch p := pred.(type) {
	case nil, query.All:
		return "TRUE", nil

	case query.And:
		if len(p.Terms) == 0 {
			return "TRUE", nil
		}

		parts := make([]string, len(p.Terms))
		for i, term := range p.Terms {
			sql, err := w.build(term)
			if err != nil {
				return "", err
			}
			parts[i] = "(" + sql + ")"
		}
		return strings.Join(parts, " AND "), nil

	case query.Contains:
		col, err := movieColumn(p.Field)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`%s LIKE %s ESCAPE '\'`, col, w.bind("%"+likeEscaper.Replace(p.Value)+"%")), nil

	case query.NumberEquals:
		col, err := movieColumn(p.Field)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s", col, w.bind(p.Value)), nil

	case query.YearEquals:
		col, err := movieColumn(p.Field)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("EXTRACT(YEAR FROM %s) = %s", col, w.bind(p.Year)), nil

	case query.DateEquals:
		col, err := movieColumn(p.Field)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s", col, w.bind(p.Date)), nil

	default:
		return "", fmt.Errorf("unsupported predicate %T", pred)
	}
}

func movieColumn(f query.Field) (string, error) {
	col, ok := movieColumns[f]
	if !ok {
		return "", fmt.Errorf("%w: no column for %s", query.ErrInvalidFilterField, f)
	}

	return col, nil
}
