package query

import (
	"slices"
	"sort"
)

// Filter is a single named filter the caller requires to be applied.
type Filter struct {
	Field string
	Value string
}

// Request is a listing request as received from the transport layer.
type Request struct {
	// Filters are optional; fields outside the allow-list are dropped.
	Filters map[string]string
	// Required, when set, must pass the allow-list or the request fails.
	Required *Filter
	PageNo   *int
	PageSize *int
}

// Plan is a validated request ready to be executed by a storage layer.
type Plan struct {
	Predicate Predicate
	Window    Window
	// Dropped lists the filter fields removed by the allow-list gate.
	Dropped []string
}

// Planner turns listing requests into plans. It holds only read-only
// configuration and is safe for concurrent use.
type Planner struct {
	gate       Gate
	pagination PaginationConfig
}

func NewPlanner(gate Gate, pagination PaginationConfig) *Planner {
	return &Planner{
		gate:       gate,
		pagination: pagination,
	}
}

// Plan gates and builds every filter, failing on the first invalid one, and
// resolves the pagination window.
func (p *Planner) Plan(req Request) (Plan, error) {
	accepted, dropped, err := p.gate.Apply(ModeBulk, req.Filters)
	if err != nil {
		return Plan{}, err
	}

	if req.Required != nil {
		single, droppedSingle, err := p.gate.Apply(ModeSingle, map[string]string{
			req.Required.Field: req.Required.Value,
		})
		if err != nil {
			return Plan{}, err
		}

		for field, value := range single {
			accepted[field] = value
		}
		dropped = append(dropped, droppedSingle...)
		slices.Sort(dropped)
		dropped = slices.Compact(dropped)
	}

	fields := make([]string, 0, len(accepted))
	for field := range accepted {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	preds := make([]Predicate, 0, len(fields))
	for _, field := range fields {
		pred, err := BuildNamed(field, accepted[field])
		if err != nil {
			return Plan{}, err
		}
		preds = append(preds, pred)
	}

	window, err := Normalize(req.PageNo, req.PageSize, p.pagination)
	if err != nil {
		return Plan{}, err
	}

	return Plan{
		Predicate: AndOf(preds...),
		Window:    window,
		Dropped:   dropped,
	}, nil
}
