package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

type ViewMode string

const (
	ViewAll     ViewMode = "all"
	ViewWeekly  ViewMode = "7"
	ViewMonthly ViewMode = "30"
)

const (
	DayLayout   = "02.01.06"
	IsoLayout   = "2006-01-02"
	MonthLayout = "01.2006"

	bucketDays = 7
)

var ErrInvalidViewMode = errors.New("invalid view mode")

func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(strings.TrimSpace(s)) {
	case "", ViewAll:
		return ViewAll, nil
	case ViewWeekly:
		return ViewWeekly, nil
	case ViewMonthly:
		return ViewMonthly, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
}

// ParseDay accepts DD.MM.YY as well as YYYY-MM-DD (with an optional time part).
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t, true
	}

	if len(s) >= len(IsoLayout) {
		if t, err := time.Parse(IsoLayout, s[:len(IsoLayout)]); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// AggregateSeries regroups a per-day series for the selected view. ViewAll
// returns a copy of the input untouched. The regrouped views drop entries
// whose date cannot be parsed and are always ordered by bucket start.
func AggregateSeries(days []types.DailyCount, mode ViewMode) []types.DailyCount {
	switch mode {
	case ViewWeekly:
		return aggregateWeekly(days)
	case ViewMonthly:
		return aggregateMonthly(days)
	default:
		out := make([]types.DailyCount, len(days))
		copy(out, days)
		return out
	}
}

type datedCount struct {
	day   time.Time
	count int64
}

func parseSeries(days []types.DailyCount) []datedCount {
	parsed := make([]datedCount, 0, len(days))
	for _, d := range days {
		if t, ok := ParseDay(d.Date); ok {
			parsed = append(parsed, datedCount{day: t, count: d.Count})
		}
	}

	return parsed
}

// Buckets are anchored at the earliest date, not at calendar weeks.
func aggregateWeekly(days []types.DailyCount) []types.DailyCount {
	parsed := parseSeries(days)
	if len(parsed) == 0 {
		return []types.DailyCount{}
	}

	anchor := parsed[0].day
	for _, d := range parsed {
		if d.day.Before(anchor) {
			anchor = d.day
		}
	}

	sums := make(map[int]int64)
	for _, d := range parsed {
		idx := daysBetween(anchor, d.day) / bucketDays
		sums[idx] += d.count
	}

	indexes := make([]int, 0, len(sums))
	for idx := range sums {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	out := make([]types.DailyCount, 0, len(indexes))
	for _, idx := range indexes {
		start := anchor.AddDate(0, 0, idx*bucketDays)
		end := start.AddDate(0, 0, bucketDays-1)
		out = append(out, types.DailyCount{
			Date:  FormatDay(start) + " - " + FormatDay(end),
			Count: sums[idx],
		})
	}

	return out
}

func aggregateMonthly(days []types.DailyCount) []types.DailyCount {
	parsed := parseSeries(days)

	sums := make(map[time.Time]int64)
	for _, d := range parsed {
		month := time.Date(d.day.Year(), d.day.Month(), 1, 0, 0, 0, 0, time.UTC)
		sums[month] += d.count
	}

	months := make([]time.Time, 0, len(sums))
	for month := range sums {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Before(months[j])
	})

	out := make([]types.DailyCount, 0, len(months))
	for _, month := range months {
		out = append(out, types.DailyCount{
			Date:  month.Format(MonthLayout),
			Count: sums[month],
		})
	}

	return out
}

// SortSeries orders a daily series chronologically. Entries with unparsable
// dates keep their relative order at the end.
func SortSeries(days []types.DailyCount) []types.DailyCount {
	out := make([]types.DailyCount, len(days))
	copy(out, days)

	sort.SliceStable(out, func(i, j int) bool {
		ti, okI := ParseDay(out[i].Date)
		tj, okJ := ParseDay(out[j].Date)
		switch {
		case okI && okJ:
			return ti.Before(tj)
		case okI:
			return true
		default:
			return false
		}
	})

	return out
}

func SumSeries(days []types.DailyCount) int64 {
	var total int64
	for _, d := range days {
		total += d.Count
	}

	return total
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
