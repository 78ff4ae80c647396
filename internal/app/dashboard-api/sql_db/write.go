package sql_db

import (
	"context"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

func (tx *DbTx) saveWebhookProbe(ctx context.Context, probe types.WebhookProbe) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(insertWebhookProbe),
		probe.Webhook, probe.StatusCode, probe.Ok, probe.Cause, probe.DurationMs, probe.ProbedAt)
	return err
}

// DeleteProbesBefore removes probes older than the given unix time and returns how many were removed.
func (sdb *SqlDB) DeleteProbesBefore(ctx context.Context, before int64) (int64, error) {
	res, err := sdb.ExecContext(ctx, sdb.Rebind(deleteProbesBefore), before)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
