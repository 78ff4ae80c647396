package services

import (
	"math"
	"sort"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/payload"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

const (
	MinLevel = 0
	MaxLevel = 10
)

type LevelBand struct {
	Level int
	MinTh float64
	MaxTh float64 // inclusive, +Inf for the top band
}

// LevelBands must stay identical to the bands used by the backend level_stats query.
var LevelBands = []LevelBand{
	{Level: 0, MinTh: 234, MaxTh: 935},
	{Level: 1, MinTh: 936, MaxTh: 4913},
	{Level: 2, MinTh: 4914, MaxTh: 14975},
	{Level: 3, MinTh: 14976, MaxTh: 24803},
	{Level: 4, MinTh: 24804, MaxTh: 49841},
	{Level: 5, MinTh: 49842, MaxTh: 99917},
	{Level: 6, MinTh: 99918, MaxTh: 249911},
	{Level: 7, MinTh: 249912, MaxTh: 499823},
	{Level: 8, MinTh: 499824, MaxTh: 999881},
	{Level: 9, MinTh: 999882, MaxTh: 7999991},
	{Level: 10, MinTh: 7999992, MaxTh: math.Inf(1)},
}

// ClassifyLevel returns the level for a hashrate in Th. ok is false below the
// first band. Values between two integer band edges fall into the lower band.
func ClassifyLevel(th float64) (level int, ok bool) {
	if math.IsNaN(th) {
		return 0, false
	}

	for i := len(LevelBands) - 1; i >= 0; i-- {
		if th >= LevelBands[i].MinTh {
			return LevelBands[i].Level, true
		}
	}

	return 0, false
}

func levelPtr(th float64) *int {
	level, ok := ClassifyLevel(th)
	if !ok {
		return nil
	}

	return &level
}

// FillLevelStats returns exactly one entry per level 0..10. Missing levels
// are synthesized with zero users, entries outside the range are dropped.
func FillLevelStats(stats []types.LevelStat) []types.LevelStat {
	byLevel := make(map[int]types.LevelStat, len(stats))
	for _, stat := range stats {
		if stat.Level < MinLevel || stat.Level > MaxLevel {
			continue
		}
		byLevel[stat.Level] = stat
	}

	filled := make([]types.LevelStat, 0, MaxLevel-MinLevel+1)
	for level := MinLevel; level <= MaxLevel; level++ {
		stat, ok := byLevel[level]
		if !ok {
			stat = types.LevelStat{Level: level, UsersPerLevel: 0, Percentage: payload.Percentage(0, 0)}
		}
		filled = append(filled, stat)
	}

	return filled
}

// LevelStatsFromRecords reads backend level_stats rows. Percentages supplied by
// the backend are kept, missing ones are computed against the sum of users.
func LevelStatsFromRecords(records []payload.Record) []types.LevelStat {
	var total int64
	for _, r := range records {
		total += r.Count("users_per_level", "users", "count")
	}

	stats := make([]types.LevelStat, 0, len(records))
	for _, r := range records {
		if !r.Has("level") {
			continue
		}
		users := r.Count("users_per_level", "users", "count")
		stats = append(stats, types.LevelStat{
			Level:         int(r.Int("level")),
			UsersPerLevel: users,
			Percentage:    payload.Percent(r.Field("percentage", "percent"), users, total),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Level < stats[j].Level
	})

	return FillLevelStats(stats)
}

// LevelStatsFromHashrates derives the funnel client-side from per-user hashrates.
// Users below the first band are not counted.
func LevelStatsFromHashrates(ths []float64) []types.LevelStat {
	counts := make(map[int]int64)
	var total int64
	for _, th := range ths {
		if level, ok := ClassifyLevel(th); ok {
			counts[level]++
			total++
		}
	}

	stats := make([]types.LevelStat, 0, len(counts))
	for level, users := range counts {
		stats = append(stats, types.LevelStat{
			Level:         level,
			UsersPerLevel: users,
			Percentage:    payload.Percentage(users, total),
		})
	}

	return FillLevelStats(stats)
}

// CompareLevelStats reports every level whose user count differs between the
// backend aggregate and the client-side classification.
func CompareLevelStats(backend, derived []types.LevelStat) []types.LevelMismatch {
	b := FillLevelStats(backend)
	d := FillLevelStats(derived)

	var mismatches []types.LevelMismatch
	for i := range b {
		if b[i].UsersPerLevel != d[i].UsersPerLevel {
			mismatches = append(mismatches, types.LevelMismatch{
				Level:   b[i].Level,
				Backend: b[i].UsersPerLevel,
				Derived: d[i].UsersPerLevel,
			})
		}
	}

	return mismatches
}

func SumLevelUsers(stats []types.LevelStat) int64 {
	var total int64
	for _, stat := range stats {
		total += stat.UsersPerLevel
	}

	return total
}
