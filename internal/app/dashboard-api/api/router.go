package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/metrics"
)

func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/summary", h.Summary).Methods(http.MethodGet)

	// Users
	api.HandleFunc("/users/growth", h.UserGrowth).Methods(http.MethodGet)
	api.HandleFunc("/users/{username}/overview", h.UserOverview).Methods(http.MethodGet)

	// Wallets
	api.HandleFunc("/wallets", h.WalletAdoption).Methods(http.MethodGet)
	api.HandleFunc("/wallets/{address}/balance", h.BalanceState).Methods(http.MethodGet)
	api.HandleFunc("/wallets/{address}/balance", h.LookupBalance).Methods(http.MethodPost)
	api.HandleFunc("/address/{address}", h.Address).Methods(http.MethodGet)

	// Events
	api.HandleFunc("/events", h.EventsSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/events/{category}", h.Events).Methods(http.MethodGet)
	api.HandleFunc("/events/{category}/select", h.SelectEvents).Methods(http.MethodPost)

	api.HandleFunc("/referrals", h.Referrals).Methods(http.MethodGet)

	// Levels
	api.HandleFunc("/levels", h.Levels).Methods(http.MethodGet)
	api.HandleFunc("/levels/drift", h.LevelDrift).Methods(http.MethodGet)

	api.HandleFunc("/leaderboard", h.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/pools", h.Pools).Methods(http.MethodGet)

	// Health
	api.HandleFunc("/health/webhooks", h.WebhookHealth).Methods(http.MethodGet)
	api.HandleFunc("/health/webhooks/{webhook}", h.WebhookProbes).Methods(http.MethodGet)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return CORS(allowedOrigins)(RequestLogger(r))
}
