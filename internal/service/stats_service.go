package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/zad-edu/masadr2040/internal/models"
	"github.com/zad-edu/masadr2040/internal/store"
)

const statsCacheKey = "stats:bookings"

// StatsService aggregates the collection for the statistics view. Entries are
// sorted by count descending, ties broken alphabetically, which is the order
// the charts render in.
type StatsService struct {
	bookings *store.BookingStore
	cache    *CacheService
	logger   *zap.Logger
	ttl      time.Duration
}

// NewStatsService constructs a StatsService and subscribes cache invalidation
// to store mutations.
func NewStatsService(bookings *store.BookingStore, cache *CacheService, logger *zap.Logger, ttl time.Duration) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &StatsService{bookings: bookings, cache: cache, logger: logger, ttl: ttl}

	if cache.Enabled() {
		bookings.Subscribe(func([]models.Booking) {
			if err := cache.Invalidate(context.Background(), statsCacheKey); err != nil {
				logger.Warn("stats cache invalidation failed", zap.Error(err))
			}
		})
	}
	return s
}

// Overview returns the aggregated statistics and indicates cache utilisation.
func (s *StatsService) Overview(ctx context.Context) (*models.BookingStats, bool, error) {
	if s.cache.Enabled() {
		var cached models.BookingStats
		if hit, err := s.cache.Get(ctx, statsCacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	stats := s.compute()
	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, statsCacheKey, stats, s.ttl); err != nil {
			s.logger.Warn("stats cache write failed", zap.Error(err))
		}
	}
	return stats, false, nil
}

func (s *StatsService) compute() *models.BookingStats {
	bookings := s.bookings.List()

	bySubject := map[string]int{}
	byTeacher := map[string]int{}
	for _, b := range bookings {
		bySubject[b.Subject]++
		byTeacher[b.Teacher]++
	}

	return &models.BookingStats{
		TotalBookings: len(bookings),
		BySubject:     sortedEntries(bySubject),
		ByTeacher:     sortedEntries(byTeacher),
	}
}

func sortedEntries(counts map[string]int) []models.CountEntry {
	entries := make([]models.CountEntry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, models.CountEntry{Label: label, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count == entries[j].Count {
			return entries[i].Label < entries[j].Label
		}
		return entries[i].Count > entries[j].Count
	})
	return entries
}
