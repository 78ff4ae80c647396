package requesters

import (
	"fmt"
	"net/http"
)

// Causes reported by WebhookError.
const (
	CauseConnectivity   = "connectivity"
	CauseInactive       = "webhook inactive"
	CauseStatus         = "unexpected status"
	CauseUnknownWebhook = "unknown webhook"
)

// WebhookError is returned for every failed webhook call. Callers surface Hint to the user.
type WebhookError struct {
	Webhook    string
	StatusCode int
	Cause      string
	Err        error
}

func (e *WebhookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("webhook %s: %s: %s", e.Webhook, e.Cause, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("webhook %s: %s (status %d)", e.Webhook, e.Cause, e.StatusCode)
	}

	return fmt.Sprintf("webhook %s: %s", e.Webhook, e.Cause)
}

func (e *WebhookError) Unwrap() error {
	return e.Err
}

// Hint names the likely cause in words meant for the dashboard user.
func (e *WebhookError) Hint() string {
	switch e.Cause {
	case CauseConnectivity:
		return "Could not reach the automation backend. Check the network connection and that the webhook host is up."
	case CauseInactive:
		return fmt.Sprintf("Webhook %q is not active. Activate its workflow in the automation backend.", e.Webhook)
	case CauseUnknownWebhook:
		return fmt.Sprintf("Webhook %q is not configured.", e.Webhook)
	default:
		return fmt.Sprintf("Webhook %q answered with status %d.", e.Webhook, e.StatusCode)
	}
}

func causeForStatus(statusCode int) string {
	if statusCode == http.StatusNotFound || statusCode == http.StatusGone {
		return CauseInactive
	}

	return CauseStatus
}
