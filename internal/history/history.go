package history

import (
	"fmt"
	"sort"
	"time"

	"TickVault/internal/decoder"
	"TickVault/internal/model"
	"TickVault/internal/resolver"
	"TickVault/internal/store"
)

// Service answers historical range queries. Each query resolves and
// decodes its own view of the immutable dataset, so it is re-entrant and
// independent of any streaming feed state.
type Service struct {
	Store    store.Store
	Resolver *resolver.Resolver
}

// New creates a history Service.
func New(s store.Store, r *resolver.Resolver) *Service {
	return &Service{Store: s, Resolver: r}
}

// Query returns every point of the identifier's dataset whose effective
// timestamp falls in [start, end], sorted ascending. The range is closed
// on both ends; an empty result is valid, not an error. The sequence is
// decoded through the same path the streaming feed uses, so for any span
// the two are element-for-element equal.
func (s *Service) Query(identifier string, start, end time.Time, offset time.Duration, policy decoder.Policy) ([]model.TimeSeriesPoint, error) {
	ctx, err := s.Resolver.Resolve(identifier, model.RequestHistorical)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", identifier, err)
	}

	payload, err := s.Store.Get(ctx.Key)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", identifier, err)
	}

	points, err := decoder.DecodeAll(payload, ctx.Symbol, offset, policy)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", identifier, err)
	}

	inRange := make([]model.TimeSeriesPoint, 0, len(points))
	for _, p := range points {
		if p.Timestamp.Before(start) || p.Timestamp.After(end) {
			continue
		}
		inRange = append(inRange, p)
	}
	sort.SliceStable(inRange, func(i, j int) bool {
		return inRange[i].Timestamp.Before(inRange[j].Timestamp)
	})
	return inRange, nil
}
