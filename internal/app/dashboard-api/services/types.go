package services

import (
	"context"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

type WebhookRequester interface {
	FetchWebhook(ctx context.Context, name string, query url.Values) ([]byte, error)
}

// BalanceProvider returns an account balance in nanotons.
type BalanceProvider interface {
	Name() string
	GetBalance(ctx context.Context, address string) (decimal.Decimal, error)
}

type PriceClient interface {
	GetTokenPrice(ctx context.Context, id, currency string) (decimal.Decimal, error)
}

type Storage interface {
	SaveWebhookProbe(ctx context.Context, probe types.WebhookProbe) error

	GetConsecutiveFailures(ctx context.Context, webhook string) (int, error)

	GetWebhookHealth(ctx context.Context) ([]types.WebhookHealth, error)

	GetRecentProbes(ctx context.Context, webhook string, limit int) ([]types.WebhookProbe, error)

	DeleteProbesBefore(ctx context.Context, before int64) (int64, error)
}

type Helper interface {
	Now() time.Time
	SendMail(message string) error
}
