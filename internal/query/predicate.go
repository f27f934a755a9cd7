package query

import "time"

// Predicate is a condition over movie fields. The set of implementations is
// closed; storage layers translate it with an exhaustive type switch.
type Predicate interface {
	predicate()
}

// All matches every record.
type All struct{}

// And matches records satisfying every term. An empty And matches everything.
type And struct {
	Terms []Predicate
}

// Contains is a case-sensitive substring match.
type Contains struct {
	Field Field
	Value string
}

// NumberEquals is an exact numeric match.
type NumberEquals struct {
	Field Field
	Value float64
}

// YearEquals matches the year component of a date field.
type YearEquals struct {
	Field Field
	Year  int
}

// DateEquals matches a calendar date exactly.
type DateEquals struct {
	Field Field
	Date  time.Time
}

func (All) predicate()          {}
func (And) predicate()          {}
func (Contains) predicate()     {}
func (NumberEquals) predicate() {}
func (YearEquals) predicate()   {}
func (DateEquals) predicate()   {}

// AndOf combines predicates with logical AND, collapsing the trivial cases.
func AndOf(preds ...Predicate) Predicate {
	terms := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if _, ok := p.(All); ok || p == nil {
			continue
		}
		terms = append(terms, p)
	}

	switch len(terms) {
	case 0:
		return All{}
	case 1:
		return terms[0]
	default:
		return And{Terms: terms}
	}
}
