package types

type WebhookProbe struct {
	Id         int    `db:"id" json:"id"`
	Webhook    string `db:"webhook" json:"webhook"`
	StatusCode int    `db:"status_code" json:"status_code"`
	Ok         bool   `db:"ok" json:"ok"`
	Cause      string `db:"cause" json:"cause,omitempty"`
	DurationMs int64  `db:"duration_ms" json:"duration_ms"`
	ProbedAt   int64  `db:"probed_at" json:"probed_at"`
}

type WebhookHealth struct {
	Webhook             string `json:"webhook"`
	LastStatusCode      int    `json:"last_status_code"`
	LastOk              bool   `json:"last_ok"`
	LastCause           string `json:"last_cause,omitempty"`
	LastProbedAt        int64  `json:"last_probed_at"`
	ConsecutiveFailures int    `json:"consecutive_failures"`
}
