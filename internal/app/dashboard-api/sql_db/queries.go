package sql_db

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS webhook_probes (
		id          BIGSERIAL PRIMARY KEY,
		webhook     TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		ok          BOOLEAN NOT NULL,
		cause       TEXT NOT NULL DEFAULT '',
		duration_ms BIGINT NOT NULL,
		probed_at   BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS webhook_probes_webhook_idx ON webhook_probes (webhook, id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS webhook_probes (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		webhook     TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		ok          BOOLEAN NOT NULL,
		cause       TEXT NOT NULL DEFAULT '',
		duration_ms INTEGER NOT NULL,
		probed_at   INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS webhook_probes_webhook_idx ON webhook_probes (webhook, id)`,
}

// Queries use ? placeholders and go through Rebind.
const (
	insertWebhookProbe = `INSERT INTO webhook_probes (webhook, status_code, ok, cause, duration_ms, probed_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	selectConsecutiveFailures = `SELECT COUNT(*) FROM webhook_probes
		WHERE webhook = ? AND NOT ok
		AND id > COALESCE((SELECT MAX(id) FROM webhook_probes WHERE webhook = ? AND ok), 0)`

	selectLatestProbes = `SELECT p.id, p.webhook, p.status_code, p.ok, p.cause, p.duration_ms, p.probed_at
		FROM webhook_probes p
		WHERE p.id = (SELECT MAX(id) FROM webhook_probes WHERE webhook = p.webhook)
		ORDER BY p.webhook ASC`

	selectRecentProbes = `SELECT id, webhook, status_code, ok, cause, duration_ms, probed_at
		FROM webhook_probes WHERE webhook = ? ORDER BY id DESC LIMIT ?`

	deleteProbesBefore = `DELETE FROM webhook_probes WHERE probed_at < ?`
)
