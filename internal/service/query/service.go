package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/cookite/cookite-go/internal/domain"
	redisrepo "github.com/cookite/cookite-go/internal/repository/redis"
)

// Service serves the admin read side: listings and statistics. Both are
// pure reads that scan every reservation referenced by the index on each
// call; nothing is cached or maintained incrementally.
type Service struct {
	store *redisrepo.ReservationStore
}

func New(store *redisrepo.ReservationStore) *Service {
	return &Service{store: store}
}

// List returns every resolvable reservation, newest first. Index entries
// whose record is missing (the documented two-write gap) are skipped.
func (s *Service) List(ctx context.Context) ([]domain.Reservation, error) {
	const op = "service.query.List"

	ids, err := s.store.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reservations := make([]domain.Reservation, 0, len(ids))
	for _, id := range ids {
		r, err := s.store.Get(ctx, id)
		if err != nil {
			continue
		}
		reservations = append(reservations, *r)
	}

	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].CreatedAt.After(reservations[j].CreatedAt)
	})

	return reservations, nil
}

// Stats aggregates revenue, item counts and a per-product quantity
// breakdown over the full index.
func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	const op = "service.query.Stats"

	ids, err := s.store.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stats := &domain.Stats{
		TotalReservations: len(ids),
		ProductStats:      make(map[string]int),
	}

	for _, id := range ids {
		r, err := s.store.Get(ctx, id)
		if err != nil {
			continue
		}

		stats.TotalRevenue = domain.RoundCents(stats.TotalRevenue + r.Total)
		for _, it := range r.Items {
			stats.TotalItems += it.Quantity
			stats.ProductStats[it.ProductName] += it.Quantity
		}
	}

	return stats, nil
}
