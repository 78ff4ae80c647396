package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/services"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

type mockDashboard struct {
	mock.Mock
}

func (md *mockDashboard) Summary(ctx context.Context) (types.DashboardSummary, error) {
	args := md.Called(ctx)
	return args.Get(0).(types.DashboardSummary), args.Error(1)
}

func (md *mockDashboard) UserGrowth(ctx context.Context, mode services.ViewMode) (types.UserGrowth, error) {
	args := md.Called(ctx, mode)
	return args.Get(0).(types.UserGrowth), args.Error(1)
}

func (md *mockDashboard) WalletAdoption(ctx context.Context, mode services.ViewMode) (types.WalletAdoption, error) {
	args := md.Called(ctx, mode)
	return args.Get(0).(types.WalletAdoption), args.Error(1)
}

func (md *mockDashboard) Events(ctx context.Context, category string, mode services.ViewMode) (types.EventStats, error) {
	args := md.Called(ctx, category, mode)
	return args.Get(0).(types.EventStats), args.Error(1)
}

func (md *mockDashboard) Referrals(ctx context.Context) (types.ReferralReport, error) {
	args := md.Called(ctx)
	return args.Get(0).(types.ReferralReport), args.Error(1)
}

func (md *mockDashboard) LevelFunnel(ctx context.Context) ([]types.LevelStat, error) {
	args := md.Called(ctx)
	return args.Get(0).([]types.LevelStat), args.Error(1)
}

func (md *mockDashboard) LevelDrift(ctx context.Context) ([]types.LevelMismatch, error) {
	args := md.Called(ctx)
	return args.Get(0).([]types.LevelMismatch), args.Error(1)
}

func (md *mockDashboard) Leaderboard(ctx context.Context) ([]types.LeaderboardEntry, error) {
	args := md.Called(ctx)
	return args.Get(0).([]types.LeaderboardEntry), args.Error(1)
}

func (md *mockDashboard) Pools(ctx context.Context) ([]types.Pool, error) {
	args := md.Called(ctx)
	return args.Get(0).([]types.Pool), args.Error(1)
}

func (md *mockDashboard) UserOverview(ctx context.Context, username string) (types.UserOverview, error) {
	args := md.Called(ctx, username)
	return args.Get(0).(types.UserOverview), args.Error(1)
}

type mockEventsScreen struct {
	mock.Mock
}

func (ms *mockEventsScreen) Select(ctx context.Context, category string, mode services.ViewMode) (services.CategoryState, error) {
	args := ms.Called(ctx, category, mode)
	return args.Get(0).(services.CategoryState), args.Error(1)
}

func (ms *mockEventsScreen) Snapshot() services.EventsSnapshot {
	args := ms.Called()
	return args.Get(0).(services.EventsSnapshot)
}

type mockBalances struct {
	mock.Mock
}

func (mb *mockBalances) Lookup(ctx context.Context, address string) types.WalletBalance {
	args := mb.Called(ctx, address)
	return args.Get(0).(types.WalletBalance)
}

func (mb *mockBalances) State(address string) (types.WalletBalance, bool) {
	args := mb.Called(address)
	return args.Get(0).(types.WalletBalance), args.Bool(1)
}

type mockHealthStore struct {
	mock.Mock
}

func (mh *mockHealthStore) GetWebhookHealth(ctx context.Context) ([]types.WebhookHealth, error) {
	args := mh.Called(ctx)
	health, _ := args.Get(0).([]types.WebhookHealth)
	return health, args.Error(1)
}

func (mh *mockHealthStore) GetRecentProbes(ctx context.Context, webhook string, limit int) ([]types.WebhookProbe, error) {
	args := mh.Called(ctx, webhook, limit)
	probes, _ := args.Get(0).([]types.WebhookProbe)
	return probes, args.Error(1)
}
