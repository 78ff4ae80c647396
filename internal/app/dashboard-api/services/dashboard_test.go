package services

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

func newTestDashboard(requester *mockRequester) *DashboardService {
	return NewDashboardService(requester, &mockHelper{})
}

func intPtr(i int) *int {
	return &i
}

func int64Ptr(i int64) *int64 {
	return &i
}

func TestSummary(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookSummary, `[{"rows":[{"total_users":"120","new_users_today":4,"active_users":"abc","premium_users":7,"total_wallets":"30","total_pools":2,"total_th":"1234.5"}]}]`)

	summary, err := newTestDashboard(requester).Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, types.DashboardSummary{
		TotalUsers:    120,
		NewUsersToday: 4,
		ActiveUsers:   0,
		PremiumUsers:  7,
		TotalWallets:  30,
		TotalPools:    2,
		TotalTh:       1234.5,
	}, summary)
}

func TestSummaryCountsNeverNegative(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookSummary, `{"total_users": 9223372036854775808, "new_users_today": "-5", "premium_users": -1.5, "total_wallets": 3}`)

	summary, err := newTestDashboard(requester).Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, types.DashboardSummary{TotalWallets: 3}, summary)
}

func TestSummaryUnknownShapeIsEmpty(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookSummary, `{"foo": 1}`)

	summary, err := newTestDashboard(requester).Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, types.DashboardSummary{}, summary)
}

func TestSummaryPropagatesTransportErrors(t *testing.T) {
	transportErr := errors.New("connection refused")

	requester := &mockRequester{}
	requester.On("FetchWebhook", mock.Anything, types.WebhookSummary, mock.Anything).Return(nil, transportErr)

	_, err := newTestDashboard(requester).Summary(context.Background())
	require.ErrorIs(t, err, transportErr)
}

const dailyUsersBody = `{"rows":[
	{"date":"2024-03-01","count":"10","language":"ru"},
	{"date":"02.03.24","count":11,"language":"en"},
	{"date":"2024-03-03T00:00:00.000Z","count":12,"language":"ru","premium":2},
	{"date":"bad","count":99},
	{"date":"07.03.24","count":16},
	{"date":"04.03.24","count":13},
	{"date":"05.03.24","count":14},
	{"date":"06.03.24","count":15}
]}`

func TestUserGrowthDailyWithForecast(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookUsersDaily, dailyUsersBody)

	growth, err := newTestDashboard(requester).UserGrowth(context.Background(), ViewAll)
	require.NoError(t, err)

	require.Equal(t, "all", growth.View)
	require.Equal(t, []types.DailyCount{
		{Date: "01.03.24", Count: 10},
		{Date: "02.03.24", Count: 11},
		{Date: "03.03.24", Count: 12},
		{Date: "04.03.24", Count: 13},
		{Date: "05.03.24", Count: 14},
		{Date: "06.03.24", Count: 15},
		{Date: "07.03.24", Count: 16},
	}, growth.Series)
	require.Equal(t, int64(91), growth.TotalUsers)
	require.Equal(t, int64(2), growth.PremiumUsers)
	require.Equal(t, []types.LanguageCount{{Language: "ru", Count: 22}, {Language: "en", Count: 11}}, growth.Languages)

	require.True(t, growth.ForecastAnchoredToToday)
	require.Len(t, growth.Forecast, ForecastHorizon)
	require.Equal(t, types.ForecastPoint{Date: "11.03.24", Count: 17}, growth.Forecast[0])
	require.Equal(t, types.ForecastPoint{Date: "17.03.24", Count: 23}, growth.Forecast[6])
}

func TestUserGrowthWeeklyHasNoForecast(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookUsersDaily, dailyUsersBody)

	growth, err := newTestDashboard(requester).UserGrowth(context.Background(), ViewWeekly)
	require.NoError(t, err)
	require.Equal(t, []types.DailyCount{{Date: "01.03.24 - 07.03.24", Count: 91}}, growth.Series)
	require.Nil(t, growth.Forecast)
	require.False(t, growth.ForecastAnchoredToToday)
}

func TestUserGrowthPrefersExplicitBreakdowns(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookUsersDaily, `{
		"rows":[{"date":"01.03.24","count":5,"language":"ru"}],
		"languages":[{"language_code":"en","count":3},{"language":"ru","count":2}],
		"premium_users":"4"
	}`)

	growth, err := newTestDashboard(requester).UserGrowth(context.Background(), ViewAll)
	require.NoError(t, err)
	require.Equal(t, []types.LanguageCount{{Language: "en", Count: 3}, {Language: "ru", Count: 2}}, growth.Languages)
	require.Equal(t, int64(4), growth.PremiumUsers)
	require.Nil(t, growth.Forecast)
}

func TestWalletAdoption(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookWallets, `[{"data":[{"date":"2024-03-01","count":2},{"date":"2024-03-09","count":3}],"total_users":"20"}]`)

	adoption, err := newTestDashboard(requester).WalletAdoption(context.Background(), ViewWeekly)
	require.NoError(t, err)
	require.Equal(t, types.WalletAdoption{
		View: "7",
		Series: []types.DailyCount{
			{Date: "01.03.24 - 07.03.24", Count: 2},
			{Date: "08.03.24 - 14.03.24", Count: 3},
		},
		TotalWallets:    5,
		TotalUsers:      20,
		AdoptionPercent: "25.00",
	}, adoption)
}

func TestWalletAdoptionKeepsBackendPercentage(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookWallets, `{"rows":[{"date":"01.03.24","count":1}],"total_wallets":8,"total_users":16,"adoption_percent":"31.5"}`)

	adoption, err := newTestDashboard(requester).WalletAdoption(context.Background(), ViewMonthly)
	require.NoError(t, err)
	require.Equal(t, []types.DailyCount{{Date: "03.2024", Count: 1}}, adoption.Series)
	require.Equal(t, int64(8), adoption.TotalWallets)
	require.Equal(t, "31.50", adoption.AdoptionPercent)
}

func TestEventsFiltersCategory(t *testing.T) {
	requester := &mockRequester{}
	requester.On("FetchWebhook", mock.Anything, types.WebhookEvents, url.Values{"category": {"asics"}}).
		Return([]byte(`[{"date":"2024-03-01","category":"asics","count":3},{"date":"2024-03-01","category":"pools","count":50},{"date":"2024-03-02","count":"4"}]`), nil)

	stats, err := newTestDashboard(requester).Events(context.Background(), types.EventCategoryAsics, ViewAll)
	require.NoError(t, err)
	require.Equal(t, types.EventStats{
		Category: "asics",
		View:     "all",
		Series:   []types.DailyCount{{Date: "01.03.24", Count: 3}, {Date: "02.03.24", Count: 4}},
		Total:    7,
	}, stats)
}

func TestEventsRejectsUnknownCategory(t *testing.T) {
	requester := &mockRequester{}

	_, err := newTestDashboard(requester).Events(context.Background(), "casino", ViewAll)
	require.ErrorIs(t, err, ErrUnknownCategory)
	requester.AssertNotCalled(t, "FetchWebhook", mock.Anything, mock.Anything, mock.Anything)
}

func TestReferrals(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookReferrals, `[{"text":"<b>Total invites:</b> 7\n<b>Top referrers:</b>\nAlice — 7"}]`)

	report, err := newTestDashboard(requester).Referrals(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(7), report.TotalInvites)
	require.Equal(t, []types.Referrer{{Name: "Alice", Count: 7}}, report.TopReferrers)
}

const levelStatsBody = `{"level_stats":[{"level":0,"users_per_level":"5","percentage":"71.43"},{"level":3,"users_per_level":2}]}`

func TestLevelFunnelFillsAllLevels(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookLevelStats, levelStatsBody)

	stats, err := newTestDashboard(requester).LevelFunnel(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 11)
	require.Equal(t, types.LevelStat{Level: 0, UsersPerLevel: 5, Percentage: "71.43"}, stats[0])
	require.Equal(t, types.LevelStat{Level: 1, UsersPerLevel: 0, Percentage: "0.00"}, stats[1])
	require.Equal(t, types.LevelStat{Level: 3, UsersPerLevel: 2, Percentage: "28.57"}, stats[3])
	require.Equal(t, int64(7), SumLevelUsers(stats))
}

func TestLevelDrift(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookLevelStats, levelStatsBody)
	requester.respond(types.WebhookLeaderboard, `[{"username":"a","th":300},{"username":"b","th":20000},{"username":"c","th":10}]`)

	mismatches, err := newTestDashboard(requester).LevelDrift(context.Background())
	require.NoError(t, err)
	require.Equal(t, []types.LevelMismatch{
		{Level: 0, Backend: 5, Derived: 1},
		{Level: 3, Backend: 2, Derived: 1},
	}, mismatches)
}

func TestLevelDriftWithoutMismatches(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookLevelStats, `[{"level":2,"users_per_level":1}]`)
	requester.respond(types.WebhookLeaderboard, `{"leaderboard":[{"username":"a","th":"5000"}]}`)

	mismatches, err := newTestDashboard(requester).LevelDrift(context.Background())
	require.NoError(t, err)
	require.NotNil(t, mismatches)
	require.Empty(t, mismatches)
}

func TestLeaderboard(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookLeaderboard, `{"leaderboard":[
		{"username":"alice","user_id":"42","asic_count":"3","th":"5000.5","avatar_url":""},
		{"rank":7,"username":"bob","th":100,"photo_url":"https://cdn.example.com/bob.png"}
	]}`)

	entries, err := newTestDashboard(requester).Leaderboard(context.Background())
	require.NoError(t, err)

	avatar := "https://cdn.example.com/bob.png"
	require.Equal(t, []types.LeaderboardEntry{
		{Rank: 1, UserId: int64Ptr(42), Username: "alice", AsicCount: 3, Th: 5000.5, Level: intPtr(2)},
		{Rank: 7, Username: "bob", Th: 100, AvatarUrl: &avatar},
	}, entries)
}

func TestLeaderboardEmptyWrappedItem(t *testing.T) {
	for _, body := range []string{`[{"leaderboard": []}]`, `[{"rows": []}]`, `{"leaderboard": []}`} {
		requester := &mockRequester{}
		requester.respond(types.WebhookLeaderboard, body)

		entries, err := newTestDashboard(requester).Leaderboard(context.Background())
		require.NoError(t, err, body)
		require.NotNil(t, entries, body)
		require.Empty(t, entries, body)
	}
}

func TestPoolsEmptyWrappedItem(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookPools, `[{"pools": []}]`)

	pools, err := newTestDashboard(requester).Pools(context.Background())
	require.NoError(t, err)
	require.Empty(t, pools)
}

func TestPools(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookPools, `[{"pool_id":1,"name":"Alpha","owner":"alice","members_count":"12","total_th":"250000"}]`)

	pools, err := newTestDashboard(requester).Pools(context.Background())
	require.NoError(t, err)
	require.Equal(t, []types.Pool{
		{Id: 1, Name: "Alpha", Owner: "alice", MembersCount: 12, TotalTh: 250000, Level: intPtr(7)},
	}, pools)
}

func TestUserOverview(t *testing.T) {
	requester := &mockRequester{}
	requester.On("FetchWebhook", mock.Anything, types.WebhookUserOverview, url.Values{"username": {"alice"}}).
		Return([]byte(`[
			{"username":"Bob"},
			{"username":"Alice","user_id":7,"language_code":"ru","is_premium":"true","asic_count":2,"th":"1000",
			 "referrals_count":"3","wallet_address":"0:`+walletHex+`","mined_sats":"150000000","events_total":9,
			 "created_at":"2024-01-01"}
		]`), nil)

	overview, err := newTestDashboard(requester).UserOverview(context.Background(), " @alice ")
	require.NoError(t, err)
	require.Equal(t, types.UserOverview{
		UserId:       int64Ptr(7),
		Username:     "Alice",
		Language:     "ru",
		IsPremium:    true,
		AsicCount:    2,
		Th:           1000,
		Level:        intPtr(1),
		Referrals:    3,
		Wallet:       walletFriendly,
		MinedSats:    btcutil.Amount(150000000),
		MinedBtc:     1.5,
		EventsTotal:  9,
		RegisteredAt: "2024-01-01",
		Found:        true,
	}, overview)
}

func TestUserOverviewNotFound(t *testing.T) {
	requester := &mockRequester{}
	requester.respond(types.WebhookUserOverview, `[]`)

	overview, err := newTestDashboard(requester).UserOverview(context.Background(), "ghost")
	require.NoError(t, err)
	require.Equal(t, types.UserOverview{Username: "ghost"}, overview)
}

func TestUserOverviewRequiresUsername(t *testing.T) {
	_, err := newTestDashboard(&mockRequester{}).UserOverview(context.Background(), " @ ")
	require.ErrorIs(t, err, ErrEmptyUsername)
}
