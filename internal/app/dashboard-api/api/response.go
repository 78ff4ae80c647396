package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/requesters"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/services"
)

var ErrStorageUnavailable = errors.New("probe storage is not configured")

// APIResponse is the envelope of every response of the api.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("error while encoding response")
	}
}

func success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func failure(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)

	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	writeJSON(w, status, APIResponse{Success: false, Error: message})
}

// statusFor maps service errors to a status code and the text shown to the user.
func statusFor(err error) (int, string) {
	var webhookErr *requesters.WebhookError
	switch {
	case errors.Is(err, services.ErrInvalidViewMode),
		errors.Is(err, services.ErrUnknownCategory),
		errors.Is(err, services.ErrEmptyUsername),
		errors.Is(err, services.ErrEmptyAddress):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &webhookErr):
		return http.StatusBadGateway, webhookErr.Hint()
	case errors.Is(err, ErrStorageUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "the automation backend did not answer in time"
	}

	return http.StatusInternalServerError, "internal error"
}
