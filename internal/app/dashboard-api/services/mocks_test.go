package services

import (
	"context"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

type mockRequester struct {
	mock.Mock
}

func (mr *mockRequester) FetchWebhook(ctx context.Context, name string, query url.Values) ([]byte, error) {
	args := mr.Called(ctx, name, query)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

// respond makes the webhook answer with body for any query.
func (mr *mockRequester) respond(name, body string) {
	mr.On("FetchWebhook", mock.Anything, name, mock.Anything).Return([]byte(body), nil)
}

type mockBalanceProvider struct {
	mock.Mock
	name string
}

func (mp *mockBalanceProvider) Name() string {
	return mp.name
}

func (mp *mockBalanceProvider) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	args := mp.Called(ctx, address)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockPriceClient struct {
	mock.Mock
}

func (mp *mockPriceClient) GetTokenPrice(ctx context.Context, id, currency string) (decimal.Decimal, error) {
	args := mp.Called(ctx, id, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockStorage struct {
	mock.Mock
}

func (ms *mockStorage) SaveWebhookProbe(ctx context.Context, probe types.WebhookProbe) error {
	args := ms.Called(ctx, probe)
	return args.Error(0)
}

func (ms *mockStorage) GetConsecutiveFailures(ctx context.Context, webhook string) (int, error) {
	args := ms.Called(ctx, webhook)
	return args.Int(0), args.Error(1)
}

func (ms *mockStorage) GetWebhookHealth(ctx context.Context) ([]types.WebhookHealth, error) {
	args := ms.Called(ctx)
	return args.Get(0).([]types.WebhookHealth), args.Error(1)
}

func (ms *mockStorage) GetRecentProbes(ctx context.Context, webhook string, limit int) ([]types.WebhookProbe, error) {
	args := ms.Called(ctx, webhook, limit)
	return args.Get(0).([]types.WebhookProbe), args.Error(1)
}

func (ms *mockStorage) DeleteProbesBefore(ctx context.Context, before int64) (int64, error) {
	args := ms.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type mockHelper struct {
	mock.Mock
}

func (mh *mockHelper) Now() time.Time {
	return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func (mh *mockHelper) SendMail(message string) error {
	args := mh.Called(message)
	return args.Error(0)
}
