package services

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/rs/zerolog/log"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/metrics"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/payload"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

var (
	ErrUnknownCategory = errors.New("unknown event category")
	ErrEmptyUsername   = errors.New("username is required")
)

var (
	summaryDecoder = payload.Decoder{
		Keys:              []string{"stats", "summary"},
		IdentifyingFields: []string{"total_users", "totalUsers"},
	}
	dailyDecoder = payload.Decoder{
		Keys:              []string{"users", "days", "series"},
		IdentifyingFields: []string{"date", "day"},
	}
	languagesDecoder = payload.Decoder{
		Keys:              []string{"languages"},
		IdentifyingFields: []string{"language", "language_code"},
	}
	walletsDecoder = payload.Decoder{
		Keys:              []string{"wallets", "days"},
		IdentifyingFields: []string{"date", "day"},
	}
	eventsDecoder = payload.Decoder{
		Keys:              []string{"events", "days"},
		IdentifyingFields: []string{"date", "day"},
	}
	levelStatsDecoder = payload.Decoder{
		Keys:              []string{"level_stats", "levels"},
		IdentifyingFields: []string{"level"},
	}
	leaderboardDecoder = payload.Decoder{
		Keys:              []string{"leaderboard", "users"},
		IdentifyingFields: []string{"user_id", "username"},
	}
	poolsDecoder = payload.Decoder{
		Keys:              []string{"pools"},
		IdentifyingFields: []string{"pool_id", "name"},
	}
	overviewDecoder = payload.Decoder{
		Keys:              []string{"users", "user"},
		IdentifyingFields: []string{"user_id", "username"},
	}
)

// DashboardService turns webhook responses into the view-models of each screen.
// Shape and coercion problems degrade to empty data, transport errors are returned as-is.
type DashboardService struct {
	requester WebhookRequester
	helper    Helper
	parser    ReportParser
}

func NewDashboardService(requester WebhookRequester, helper Helper) *DashboardService {
	return &DashboardService{
		requester: requester,
		helper:    helper,
		parser:    TextReportParser{},
	}
}

func (s *DashboardService) Summary(ctx context.Context) (types.DashboardSummary, error) {
	body, err := s.requester.FetchWebhook(ctx, types.WebhookSummary, nil)
	if err != nil {
		return types.DashboardSummary{}, err
	}

	records := summaryDecoder.Decode(body)
	if len(records) == 0 {
		return types.DashboardSummary{}, nil
	}

	r := records[0]
	return types.DashboardSummary{
		TotalUsers:    r.Count("total_users", "totalUsers"),
		NewUsersToday: r.Count("new_users_today", "new_today", "newUsersToday"),
		ActiveUsers:   r.Count("active_users", "active_24h", "activeUsers"),
		PremiumUsers:  r.Count("premium_users", "premium", "premiumUsers"),
		TotalWallets:  r.Count("total_wallets", "wallets", "totalWallets"),
		TotalPools:    r.Count("total_pools", "pools", "totalPools"),
		TotalTh:       r.Float("total_th", "th", "totalTh"),
	}, nil
}

func (s *DashboardService) UserGrowth(ctx context.Context, mode ViewMode) (types.UserGrowth, error) {
	body, err := s.requester.FetchWebhook(ctx, types.WebhookUsersDaily, nil)
	if err != nil {
		return types.UserGrowth{}, err
	}

	records := dailyDecoder.Decode(body)

	byDate := map[string]int64{}
	languages := map[string]int64{}
	var premium int64
	for _, r := range records {
		day, ok := ParseDay(r.String("date", "day", "created_at"))
		if !ok {
			continue
		}
		count := r.Count("count", "new_users", "users")
		byDate[FormatDay(day)] += count
		if lang := r.String("language", "language_code"); lang != "" {
			languages[lang] += count
		}
		premium += r.Count("premium", "premium_users")
	}

	// an explicit breakdown sent next to the rows wins over the per-row one
	env := payload.Envelope(body)
	if env.Has("languages") {
		languages = map[string]int64{}
		for _, r := range languagesDecoder.DecodeValue(env["languages"]) {
			languages[r.String("language", "language_code")] += r.Count("count", "users")
		}
	}

	series := SortSeries(seriesFromMap(byDate))
	growth := types.UserGrowth{
		View:       string(mode),
		Series:     AggregateSeries(series, mode),
		Languages:  languageCounts(languages),
		TotalUsers: SumSeries(series),
	}

	if env.Has("premium_users") {
		premium = env.Count("premium_users")
	}
	growth.PremiumUsers = premium

	// the trend line is only drawn over the daily view
	if mode == ViewAll {
		growth.Forecast, growth.ForecastAnchoredToToday = ForecastSeries(series, s.helper.Now())
	}

	return growth, nil
}

func (s *DashboardService) WalletAdoption(ctx context.Context, mode ViewMode) (types.WalletAdoption, error) {
	body, err := s.requester.FetchWebhook(ctx, types.WebhookWallets, nil)
	if err != nil {
		return types.WalletAdoption{}, err
	}

	byDate := map[string]int64{}
	for _, r := range walletsDecoder.Decode(body) {
		day, ok := ParseDay(r.String("date", "day"))
		if !ok {
			continue
		}
		byDate[FormatDay(day)] += r.Count("count", "wallets", "new_wallets")
	}

	series := SortSeries(seriesFromMap(byDate))
	env := payload.Envelope(body)

	totalWallets := SumSeries(series)
	if env.Has("total_wallets") {
		totalWallets = env.Count("total_wallets")
	}
	totalUsers := env.Count("total_users")

	return types.WalletAdoption{
		View:            string(mode),
		Series:          AggregateSeries(series, mode),
		TotalWallets:    totalWallets,
		TotalUsers:      totalUsers,
		AdoptionPercent: payload.Percent(env.Field("adoption_percent"), totalWallets, totalUsers),
	}, nil
}

func (s *DashboardService) Events(ctx context.Context, category string, mode ViewMode) (types.EventStats, error) {
	if !isEventCategory(category) {
		return types.EventStats{}, ErrUnknownCategory
	}

	body, err := s.requester.FetchWebhook(ctx, types.WebhookEvents, url.Values{"category": {category}})
	if err != nil {
		return types.EventStats{}, err
	}

	byDate := map[string]int64{}
	for _, r := range eventsDecoder.Decode(body) {
		if c := r.String("category", "event_type"); c != "" && c != category {
			continue
		}
		day, ok := ParseDay(r.String("date", "day"))
		if !ok {
			continue
		}
		byDate[FormatDay(day)] += r.Count("count", "events")
	}

	series := SortSeries(seriesFromMap(byDate))
	return types.EventStats{
		Category: category,
		View:     string(mode),
		Series:   AggregateSeries(series, mode),
		Total:    SumSeries(series),
	}, nil
}

func (s *DashboardService) Referrals(ctx context.Context) (types.ReferralReport, error) {
	body, err := s.requester.FetchWebhook(ctx, types.WebhookReferrals, nil)
	if err != nil {
		return types.ReferralReport{}, err
	}

	return ParseReferralPayload(body, s.parser), nil
}

func (s *DashboardService) LevelFunnel(ctx context.Context) ([]types.LevelStat, error) {
	body, err := s.requester.FetchWebhook(ctx, types.WebhookLevelStats, nil)
	if err != nil {
		return nil, err
	}

	return LevelStatsFromRecords(levelStatsDecoder.Decode(body)), nil
}

// LevelDrift compares the backend funnel with the funnel classified from the
// leaderboard hashrates. It is only meaningful when the leaderboard webhook
// returns every user.
func (s *DashboardService) LevelDrift(ctx context.Context) ([]types.LevelMismatch, error) {
	backend, err := s.LevelFunnel(ctx)
	if err != nil {
		return nil, err
	}

	leaderboard, err := s.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}

	ths := make([]float64, 0, len(leaderboard))
	for _, entry := range leaderboard {
		ths = append(ths, entry.Th)
	}

	mismatches := CompareLevelStats(backend, LevelStatsFromHashrates(ths))
	metrics.SetLevelDrift(len(mismatches))
	for _, m := range mismatches {
		log.Warn().Msgf("level %d: backend reports %d users, hashrate classification gives %d", m.Level, m.Backend, m.Derived)
	}

	if mismatches == nil {
		mismatches = []types.LevelMismatch{}
	}

	return mismatches, nil
}

func (s *DashboardService) Leaderboard(ctx context.Context) ([]types.LeaderboardEntry, error) {
	body, err := s.requester.FetchWebhook(ctx, types.WebhookLeaderboard, nil)
	if err != nil {
		return nil, err
	}

	records := leaderboardDecoder.Decode(body)
	entries := make([]types.LeaderboardEntry, 0, len(records))
	for i, r := range records {
		rank := int(r.Int("rank", "position"))
		if rank < 1 {
			rank = i + 1
		}
		th := r.Float("th", "total_th", "hashrate")
		entries = append(entries, types.LeaderboardEntry{
			Rank:      rank,
			UserId:    payload.OptionalInt(r.Field("user_id", "id", "telegram_id")),
			Username:  r.String("username", "name", "first_name"),
			AsicCount: r.Count("asic_count", "asics", "total_asics"),
			Th:        th,
			Level:     levelPtr(th),
			AvatarUrl: payload.OptionalString(r.Field("avatar_url", "photo_url")),
		})
	}

	return entries, nil
}

func (s *DashboardService) Pools(ctx context.Context) ([]types.Pool, error) {
	body, err := s.requester.FetchWebhook(ctx, types.WebhookPools, nil)
	if err != nil {
		return nil, err
	}

	records := poolsDecoder.Decode(body)
	pools := make([]types.Pool, 0, len(records))
	for _, r := range records {
		th := r.Float("total_th", "th")
		pools = append(pools, types.Pool{
			Id:           r.Int("pool_id", "id"),
			Name:         r.String("name", "pool_name"),
			Owner:        r.String("owner", "owner_username", "creator"),
			MembersCount: r.Count("members_count", "members"),
			TotalTh:      th,
			Level:        levelPtr(th),
		})
	}

	return pools, nil
}

// UserOverview looks a player up by username. A leading @ is ignored.
func (s *DashboardService) UserOverview(ctx context.Context, username string) (types.UserOverview, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return types.UserOverview{}, ErrEmptyUsername
	}

	body, err := s.requester.FetchWebhook(ctx, types.WebhookUserOverview, url.Values{"username": {username}})
	if err != nil {
		return types.UserOverview{}, err
	}

	records := overviewDecoder.Decode(body)
	if len(records) == 0 {
		return types.UserOverview{Username: username}, nil
	}

	r := records[0]
	for _, candidate := range records {
		if strings.EqualFold(strings.TrimPrefix(candidate.String("username"), "@"), username) {
			r = candidate
			break
		}
	}

	th := r.Float("th", "total_th", "hashrate")
	mined := btcutil.Amount(r.Count("mined_sats", "total_mined_sats", "mined"))

	overview := types.UserOverview{
		UserId:       payload.OptionalInt(r.Field("user_id", "id", "telegram_id")),
		Username:     r.String("username"),
		Language:     r.String("language", "language_code"),
		IsPremium:    r.Bool("is_premium", "premium"),
		AsicCount:    r.Count("asic_count", "asics", "total_asics"),
		Th:           th,
		Level:        levelPtr(th),
		Referrals:    r.Count("referrals", "referrals_count", "invites"),
		MinedSats:    mined,
		MinedBtc:     mined.ToBTC(),
		EventsTotal:  r.Count("events_total", "events"),
		RegisteredAt: r.String("registered_at", "created_at"),
		LastActiveAt: r.String("last_active_at", "updated_at"),
		Found:        true,
	}

	if overview.Username == "" {
		overview.Username = username
	}
	if wallet := r.String("wallet", "wallet_address"); wallet != "" {
		overview.Wallet = ToFriendlyAddress(wallet)
	}

	return overview, nil
}

func isEventCategory(category string) bool {
	for _, c := range types.EventCategories {
		if c == category {
			return true
		}
	}

	return false
}

func seriesFromMap(byDate map[string]int64) []types.DailyCount {
	series := make([]types.DailyCount, 0, len(byDate))
	for date, count := range byDate {
		series = append(series, types.DailyCount{Date: date, Count: count})
	}

	return series
}

func languageCounts(languages map[string]int64) []types.LanguageCount {
	counts := make([]types.LanguageCount, 0, len(languages))
	for lang, count := range languages {
		if lang == "" {
			continue
		}
		counts = append(counts, types.LanguageCount{Language: lang, Count: count})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Language < counts[j].Language
	})

	return counts
}
