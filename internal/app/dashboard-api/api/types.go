package api

import (
	"context"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/services"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

type Dashboard interface {
	Summary(ctx context.Context) (types.DashboardSummary, error)

	UserGrowth(ctx context.Context, mode services.ViewMode) (types.UserGrowth, error)

	WalletAdoption(ctx context.Context, mode services.ViewMode) (types.WalletAdoption, error)

	Events(ctx context.Context, category string, mode services.ViewMode) (types.EventStats, error)

	Referrals(ctx context.Context) (types.ReferralReport, error)

	LevelFunnel(ctx context.Context) ([]types.LevelStat, error)

	LevelDrift(ctx context.Context) ([]types.LevelMismatch, error)

	Leaderboard(ctx context.Context) ([]types.LeaderboardEntry, error)

	Pools(ctx context.Context) ([]types.Pool, error)

	UserOverview(ctx context.Context, username string) (types.UserOverview, error)
}

type EventsScreen interface {
	Select(ctx context.Context, category string, mode services.ViewMode) (services.CategoryState, error)
	Snapshot() services.EventsSnapshot
}

type Balances interface {
	Lookup(ctx context.Context, address string) types.WalletBalance
	State(address string) (types.WalletBalance, bool)
}

type HealthStore interface {
	GetWebhookHealth(ctx context.Context) ([]types.WebhookHealth, error)
	GetRecentProbes(ctx context.Context, webhook string, limit int) ([]types.WebhookProbe, error)
}

type AddressView struct {
	Address         string `json:"address"`
	FriendlyAddress string `json:"friendly_address"`
}
