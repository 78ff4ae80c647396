package requesters

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/infrastructure"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/metrics"
)

func NewRequester(config *infrastructure.Config) *Requester {
	return &Requester{
		config: config,
		client: &http.Client{Timeout: config.WebhookTimeout},
	}
}

type Requester struct {
	config *infrastructure.Config
	client *http.Client
}

// FetchWebhook calls the named webhook with the given query and returns the raw body.
// Every failure is a *WebhookError.
func (r *Requester) FetchWebhook(ctx context.Context, name string, query url.Values) ([]byte, error) {
	started := time.Now()

	target, ok := r.config.Webhooks.URL(name)
	if !ok {
		metrics.ObserveWebhook(name, metrics.OutcomeSkipped, started)
		return nil, &WebhookError{Webhook: name, Cause: CauseUnknownWebhook}
	}

	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		metrics.ObserveWebhook(name, metrics.OutcomeError, started)
		return nil, &WebhookError{Webhook: name, Cause: CauseConnectivity, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		log.Error().Msgf("webhook %s request failed: %s", name, err)
		metrics.ObserveWebhook(name, metrics.OutcomeError, started)
		return nil, &WebhookError{Webhook: name, Cause: CauseConnectivity, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.ObserveWebhook(name, metrics.OutcomeError, started)
		return nil, &WebhookError{Webhook: name, StatusCode: res.StatusCode, Cause: CauseConnectivity, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		cause := causeForStatus(res.StatusCode)
		outcome := metrics.OutcomeError
		if cause == CauseInactive {
			outcome = metrics.OutcomeInactive
		}
		log.Error().Msgf("webhook %s responded with status %d: %s", name, res.StatusCode, truncate(body, 200))
		metrics.ObserveWebhook(name, outcome, started)
		return nil, &WebhookError{Webhook: name, StatusCode: res.StatusCode, Cause: cause}
	}

	metrics.ObserveWebhook(name, metrics.OutcomeOk, started)
	return body, nil
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}

	return string(body[:limit]) + "..."
}
