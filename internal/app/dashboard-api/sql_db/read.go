package sql_db

import (
	"context"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

// GetConsecutiveFailures counts the failed probes of a webhook since its last successful one.
func (sdb *SqlDB) GetConsecutiveFailures(ctx context.Context, webhook string) (int, error) {
	var failures int
	if err := sdb.GetContext(ctx, &failures, sdb.Rebind(selectConsecutiveFailures), webhook, webhook); err != nil {
		return 0, err
	}

	return failures, nil
}

func (sdb *SqlDB) GetRecentProbes(ctx context.Context, webhook string, limit int) ([]types.WebhookProbe, error) {
	probes := []types.WebhookProbe{}
	if err := sdb.SelectContext(ctx, &probes, sdb.Rebind(selectRecentProbes), webhook, limit); err != nil {
		return nil, err
	}

	return probes, nil
}

// GetWebhookHealth returns the latest probe of every probed webhook, ordered by name.
func (sdb *SqlDB) GetWebhookHealth(ctx context.Context) ([]types.WebhookHealth, error) {
	latest := []types.WebhookProbe{}
	if err := sdb.SelectContext(ctx, &latest, selectLatestProbes); err != nil {
		return nil, err
	}

	health := make([]types.WebhookHealth, 0, len(latest))
	for _, probe := range latest {
		failures, err := sdb.GetConsecutiveFailures(ctx, probe.Webhook)
		if err != nil {
			return nil, err
		}

		health = append(health, types.WebhookHealth{
			Webhook:             probe.Webhook,
			LastStatusCode:      probe.StatusCode,
			LastOk:              probe.Ok,
			LastCause:           probe.Cause,
			LastProbedAt:        probe.ProbedAt,
			ConsecutiveFailures: failures,
		})
	}

	return health, nil
}
