package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/infrastructure"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/metrics"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/requesters"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

// HealthService probes every configured webhook and alerts once per failure streak.
type HealthService struct {
	config    *infrastructure.Config
	requester WebhookRequester
	helper    Helper
}

func NewHealthService(config *infrastructure.Config, requester WebhookRequester, helper Helper) *HealthService {
	return &HealthService{
		config:    config,
		requester: requester,
		helper:    helper,
	}
}

/*
Execute runs one probe round.

 1. Call every webhook of the catalog, skipping the ones that are not configured
    and the ones whose required query parameter has no probe value.
 2. Store the outcome as a webhook_probes row.
 3. Read the current streak of failed probes for the webhook.
 4. Send one alert mail when the streak reaches WebhookAlertAfterFailures.
 5. Drop probes older than ProbeRetention.

Only storage errors are returned, a failing webhook is the expected outcome of a probe.
*/
func (s *HealthService) Execute(ctx context.Context, storage Storage) error {
	for _, name := range types.AllWebhooks {
		if err := ctx.Err(); err != nil {
			return err
		}

		probe, ok := s.probe(ctx, name)
		if !ok {
			continue
		}

		if err := storage.SaveWebhookProbe(ctx, probe); err != nil {
			return fmt.Errorf("failed to save probe for webhook %s: %w", name, err)
		}

		failures, err := storage.GetConsecutiveFailures(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to get consecutive failures for webhook %s: %w", name, err)
		}
		metrics.SetWebhookFailures(name, failures)

		if failures > 0 && failures == s.config.WebhookAlertAfterFailures {
			s.alert(probe, failures)
		}
	}

	if s.config.ProbeRetention <= 0 {
		return nil
	}

	before := s.helper.Now().Add(-s.config.ProbeRetention).Unix()
	removed, err := storage.DeleteProbesBefore(ctx, before)
	if err != nil {
		return fmt.Errorf("failed to delete old probes: %w", err)
	}
	if removed > 0 {
		log.Debug().Msgf("deleted %d webhook probes older than %s", removed, s.config.ProbeRetention)
	}

	return nil
}

func (s *HealthService) probe(ctx context.Context, name string) (types.WebhookProbe, bool) {
	query := s.config.ProbeQueries[name]
	if param, ok := types.WebhookRequiredParams[name]; ok && query.Get(param) == "" {
		log.Debug().Msgf("skipping webhook %s probe, no %s configured", name, param)
		return types.WebhookProbe{}, false
	}

	started := s.helper.Now()
	_, err := s.requester.FetchWebhook(ctx, name, query)
	elapsed := s.helper.Now().Sub(started)

	probe := types.WebhookProbe{
		Webhook:    name,
		StatusCode: 200,
		Ok:         err == nil,
		DurationMs: elapsed.Milliseconds(),
		ProbedAt:   started.Unix(),
	}

	if err == nil {
		return probe, true
	}

	var webhookErr *requesters.WebhookError
	if errors.As(err, &webhookErr) {
		if webhookErr.Cause == requesters.CauseUnknownWebhook {
			return probe, false
		}
		probe.StatusCode = webhookErr.StatusCode
		probe.Cause = webhookErr.Cause
	} else {
		probe.StatusCode = 0
		probe.Cause = err.Error()
	}

	log.Warn().Msgf("webhook %s probe failed: %s", name, err)
	return probe, true
}

func (s *HealthService) alert(probe types.WebhookProbe, failures int) {
	message := fmt.Sprintf("Webhook %s failed %d probes in a row. Last cause: %s (status %d)",
		probe.Webhook, failures, probe.Cause, probe.StatusCode)
	log.Error().Msg(message)

	if err := s.helper.SendMail(message); err != nil {
		log.Error().Msgf("failed to send alert for webhook %s: %s", probe.Webhook, err)
	}
}
