package types

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
)

type DailyCount struct {
	Date  string `json:"date"` // DD.MM.YY, or a bucket label after aggregation
	Count int64  `json:"count"`
}

type ForecastPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type LevelStat struct {
	Level         int    `json:"level"`
	UsersPerLevel int64  `json:"users_per_level"`
	Percentage    string `json:"percentage"`
}

type LevelMismatch struct {
	Level   int   `json:"level"`
	Backend int64 `json:"backend"`
	Derived int64 `json:"derived"`
}

type LeaderboardEntry struct {
	Rank      int     `json:"rank"`
	UserId    *int64  `json:"user_id"`
	Username  string  `json:"username"`
	AsicCount int64   `json:"asic_count"`
	Th        float64 `json:"th"`
	Level     *int    `json:"level"`
	AvatarUrl *string `json:"avatar_url"`
}

type Pool struct {
	Id           int64   `json:"id"`
	Name         string  `json:"name"`
	Owner        string  `json:"owner"`
	MembersCount int64   `json:"members_count"`
	TotalTh      float64 `json:"total_th"`
	Level        *int    `json:"level"`
}

type DashboardSummary struct {
	TotalUsers    int64   `json:"total_users"`
	NewUsersToday int64   `json:"new_users_today"`
	ActiveUsers   int64   `json:"active_users"`
	PremiumUsers  int64   `json:"premium_users"`
	TotalWallets  int64   `json:"total_wallets"`
	TotalPools    int64   `json:"total_pools"`
	TotalTh       float64 `json:"total_th"`
}

type LanguageCount struct {
	Language string `json:"language"`
	Count    int64  `json:"count"`
}

type UserGrowth struct {
	View     string          `json:"view"`
	Series   []DailyCount    `json:"series"`
	Forecast []ForecastPoint `json:"forecast,omitempty"`

	// Forecast dates start the day after the request, not after the last series date.
	ForecastAnchoredToToday bool `json:"forecast_anchored_to_today"`

	Languages    []LanguageCount `json:"languages"`
	PremiumUsers int64           `json:"premium_users"`
	TotalUsers   int64           `json:"total_users"`
}

type WalletAdoption struct {
	View            string       `json:"view"`
	Series          []DailyCount `json:"series"`
	TotalWallets    int64        `json:"total_wallets"`
	TotalUsers      int64        `json:"total_users"`
	AdoptionPercent string       `json:"adoption_percent"`
}

type EventStats struct {
	Category string       `json:"category"`
	View     string       `json:"view"`
	Series   []DailyCount `json:"series"`
	Total    int64        `json:"total"`
}

type Referrer struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type ReferralReport struct {
	TotalInvites int64        `json:"total_invites"`
	TopReferrers []Referrer   `json:"top_referrers"`
	ByDay        []DailyCount `json:"by_day"`
}

type UserOverview struct {
	UserId       *int64         `json:"user_id"`
	Username     string         `json:"username"`
	Language     string         `json:"language"`
	IsPremium    bool           `json:"is_premium"`
	AsicCount    int64          `json:"asic_count"`
	Th           float64        `json:"th"`
	Level        *int           `json:"level"`
	Referrals    int64          `json:"referrals"`
	Wallet       string         `json:"wallet"`
	MinedSats    btcutil.Amount `json:"mined_sats"`
	MinedBtc     float64        `json:"mined_btc"`
	EventsTotal  int64          `json:"events_total"`
	RegisteredAt string         `json:"registered_at"`
	LastActiveAt string         `json:"last_active_at"`
	Found        bool           `json:"found"`
}

type WalletBalance struct {
	Address         string           `json:"address"`
	FriendlyAddress string           `json:"friendly_address"`
	Loading         bool             `json:"loading"`
	Balance         *decimal.Decimal `json:"balance,omitempty"`
	FiatValue       *decimal.Decimal `json:"fiat_value,omitempty"`
	Currency        string           `json:"currency,omitempty"`
	Provider        string           `json:"provider,omitempty"`
	Error           string           `json:"error,omitempty"`
}
