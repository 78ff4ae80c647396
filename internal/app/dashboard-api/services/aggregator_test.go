package services

import (
	"errors"
	"testing"
	"time"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
	"github.com/stretchr/testify/require"
)

func uniformSeries(start time.Time, days int, count int64) []types.DailyCount {
	series := make([]types.DailyCount, 0, days)
	for i := 0; i < days; i++ {
		series = append(series, types.DailyCount{Date: FormatDay(start.AddDate(0, 0, i)), Count: count})
	}

	return series
}

func TestParseViewMode(t *testing.T) {
	for in, expected := range map[string]ViewMode{"": ViewAll, "all": ViewAll, "7": ViewWeekly, "30": ViewMonthly, " 7 ": ViewWeekly} {
		mode, err := ParseViewMode(in)
		require.NoError(t, err)
		require.Equal(t, expected, mode)
	}

	_, err := ParseViewMode("14")
	require.True(t, errors.Is(err, ErrInvalidViewMode))
}

func TestAggregateAllIsPassThrough(t *testing.T) {
	series := []types.DailyCount{{Date: "03.01.24", Count: 1}, {Date: "garbage", Count: 2}, {Date: "01.01.24", Count: 3}}
	require.Equal(t, series, AggregateSeries(series, ViewAll))
}

func TestAggregateWeeklyUniformFourteenDays(t *testing.T) {
	series := uniformSeries(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 14, 1)

	weekly := AggregateSeries(series, ViewWeekly)
	require.Equal(t, []types.DailyCount{
		{Date: "01.01.24 - 07.01.24", Count: 7},
		{Date: "08.01.24 - 14.01.24", Count: 7},
	}, weekly)
}

func TestAggregateWeeklyIsAnchoredAtEarliestDateRegardlessOfOrder(t *testing.T) {
	series := []types.DailyCount{
		{Date: "10.01.24", Count: 4},
		{Date: "03.01.24", Count: 1},
		{Date: "2024-01-09", Count: 2},
		{Date: "04.01.24", Count: 3},
	}

	weekly := AggregateSeries(series, ViewWeekly)
	require.Equal(t, []types.DailyCount{
		{Date: "03.01.24 - 09.01.24", Count: 6},
		{Date: "10.01.24 - 16.01.24", Count: 4},
	}, weekly)
}

func TestAggregateWeeklySkipsEmptyBuckets(t *testing.T) {
	series := []types.DailyCount{{Date: "01.01.24", Count: 1}, {Date: "20.01.24", Count: 2}}

	weekly := AggregateSeries(series, ViewWeekly)
	require.Equal(t, []types.DailyCount{
		{Date: "01.01.24 - 07.01.24", Count: 1},
		{Date: "15.01.24 - 21.01.24", Count: 2},
	}, weekly)
}

func TestAggregateMonthlyGroupsByCalendarMonth(t *testing.T) {
	series := []types.DailyCount{
		{Date: "01.02.24", Count: 5},
		{Date: "31.01.24", Count: 2},
		{Date: "15.12.23", Count: 1},
		{Date: "29.02.24", Count: 1},
		{Date: "bad", Count: 100},
	}

	monthly := AggregateSeries(series, ViewMonthly)
	require.Equal(t, []types.DailyCount{
		{Date: "12.2023", Count: 1},
		{Date: "01.2024", Count: 2},
		{Date: "02.2024", Count: 6},
	}, monthly)
}

func TestAggregateEmptySeries(t *testing.T) {
	require.Empty(t, AggregateSeries(nil, ViewWeekly))
	require.Empty(t, AggregateSeries(nil, ViewMonthly))
	require.Empty(t, AggregateSeries(nil, ViewAll))
}

func TestSortSeries(t *testing.T) {
	series := []types.DailyCount{{Date: "x", Count: 9}, {Date: "02.01.24", Count: 2}, {Date: "01.01.24", Count: 1}}

	require.Equal(t, []types.DailyCount{
		{Date: "01.01.24", Count: 1},
		{Date: "02.01.24", Count: 2},
		{Date: "x", Count: 9},
	}, SortSeries(series))
	require.Equal(t, int64(12), SumSeries(series))
}
