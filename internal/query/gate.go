package query

import (
	"fmt"
	"sort"
	"strings"
)

// Mode selects how the gate treats fields outside the allow-list.
type Mode int

const (
	// ModeBulk drops disallowed fields silently. Used for free-form filter maps.
	ModeBulk Mode = iota + 1
	// ModeSingle rejects a disallowed field with ErrInvalidFilterField. Used when
	// the caller names one filter explicitly and expects it to be applied.
	ModeSingle
)

// Gate checks requested filter fields against the configured allow-list.
type Gate struct {
	enabled bool
	allowed map[string]struct{}
}

func NewGate(enabled bool, allowedFields []string) Gate {
	allowed := make(map[string]struct{}, len(allowedFields))
	for _, f := range allowedFields {
		allowed[strings.ToLower(strings.TrimSpace(f))] = struct{}{}
	}

	return Gate{
		enabled: enabled,
		allowed: allowed,
	}
}

func (g Gate) Enabled() bool {
	return g.enabled
}

func (g Gate) Allows(field string) bool {
	_, ok := g.allowed[strings.ToLower(field)]
	return ok
}

// Apply returns the filters that may be applied and the sorted names of the
// ones that were dropped. When filtering is disabled every field is dropped in
// both modes.
func (g Gate) Apply(mode Mode, filters map[string]string) (map[string]string, []string, error) {
	accepted := make(map[string]string, len(filters))
	var dropped []string

	for field, value := range filters {
		switch {
		case !g.enabled:
			dropped = append(dropped, field)
		case g.Allows(field):
			accepted[field] = value
		case mode == ModeSingle:
			return nil, nil, fmt.Errorf("%w: filtering by %q is not allowed", ErrInvalidFilterField, field)
		default:
			dropped = append(dropped, field)
		}
	}

	sort.Strings(dropped)

	return accepted, dropped, nil
}
