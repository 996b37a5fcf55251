package core

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DayFormat is the layout of the ISO dates used in the activity log.
const DayFormat = "2006-01-02"

// Streak tracks consecutive days with recorded activity.
type Streak struct {
	Current    int
	Max        int
	LastActive string // ISO date of the most recent activity
}

// UserStats is the singleton gamification record: daily activity counts
// for the contribution heatmap plus aggregate totals.
type UserStats struct {
	Streak      Streak
	ActivityLog map[string]int // ISO date -> count
	TotalNotes  int
	TotalWords  int
}

// ActivityDay is one heatmap bucket.
type ActivityDay struct {
	Date  string
	Count int
	Level int // 0..4
}

// ActivityLevel buckets a daily count into a heatmap intensity level.
func ActivityLevel(count int) int {
	switch {
	case count == 0:
		return 0
	case count < 3:
		return 1
	case count < 6:
		return 2
	case count < 9:
		return 3
	default:
		return 4
	}
}

// Heatmap expands the activity log into one entry per day between from
// and to inclusive, in chronological order. Days without activity get
// count zero.
func Heatmap(stats UserStats, from, to time.Time) []ActivityDay {
	var days []ActivityDay
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(DayFormat)
		count := stats.ActivityLog[date]
		days = append(days, ActivityDay{Date: date, Count: count, Level: ActivityLevel(count)})
	}
	return days
}

// StatsService maintains the user stats record.
type StatsService struct {
	store Store
	cfg   serviceConfig
}

// NewStatsService creates a StatsService backed by the given store.
func NewStatsService(store Store, opts ...ServiceOption) *StatsService {
	return &StatsService{store: store, cfg: newServiceConfig(opts)}
}

// Get returns the current stats. A store without stats yields the zero
// record rather than an error.
func (s *StatsService) Get(ctx context.Context) (UserStats, error) {
	stats, err := s.store.GetStats(ctx)
	if errors.Is(err, ErrNotFound) {
		return UserStats{ActivityLog: map[string]int{}}, nil
	}
	if err != nil {
		return UserStats{}, fmt.Errorf("get stats: %w", err)
	}
	if stats.ActivityLog == nil {
		stats.ActivityLog = map[string]int{}
	}
	return stats, nil
}

// Record adds delta activity for the given day and advances the streak.
// Same-day activity extends nothing; the next calendar day extends the
// current streak; any later day restarts it at one.
func (s *StatsService) Record(ctx context.Context, day time.Time, delta int) (UserStats, error) {
	stats, err := s.Get(ctx)
	if err != nil {
		return UserStats{}, err
	}

	date := day.Format(DayFormat)
	stats.ActivityLog[date] += delta

	if stats.Streak.LastActive != date {
		if isNextDay(stats.Streak.LastActive, day) {
			stats.Streak.Current++
		} else {
			stats.Streak.Current = 1
		}
		stats.Streak.LastActive = date
	}
	if stats.Streak.Current > stats.Streak.Max {
		stats.Streak.Max = stats.Streak.Current
	}

	if err := s.store.PutStats(ctx, stats); err != nil {
		return UserStats{}, fmt.Errorf("record activity: %w", err)
	}
	return stats, nil
}

// Recount recomputes the aggregate totals from the note collection.
func (s *StatsService) Recount(ctx context.Context) (UserStats, error) {
	stats, err := s.Get(ctx)
	if err != nil {
		return UserStats{}, err
	}

	notes, err := s.store.ListNotes(ctx, AllNotes())
	if err != nil {
		return UserStats{}, fmt.Errorf("recount stats: %w", err)
	}

	stats.TotalNotes = len(notes)
	stats.TotalWords = 0
	for _, n := range notes {
		stats.TotalWords += n.Words()
	}

	if err := s.store.PutStats(ctx, stats); err != nil {
		return UserStats{}, fmt.Errorf("recount stats: %w", err)
	}
	return stats, nil
}

func isNextDay(lastActive string, day time.Time) bool {
	if lastActive == "" {
		return false
	}
	prev, err := time.Parse(DayFormat, lastActive)
	if err != nil {
		return false
	}
	return prev.AddDate(0, 0, 1).Format(DayFormat) == day.Format(DayFormat)
}
