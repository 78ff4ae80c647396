package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/services"
)

const (
	defaultProbeLimit = 20
	maxProbeLimit     = 500
)

var ErrNoBalanceState = errors.New("no balance lookup for this address yet")

// Handler serves the view-models of every dashboard screen. health may be nil
// when no probe storage is configured.
type Handler struct {
	dashboard Dashboard
	events    EventsScreen
	balances  Balances
	health    HealthStore
}

func NewHandler(dashboard Dashboard, events EventsScreen, balances Balances, health HealthStore) *Handler {
	return &Handler{
		dashboard: dashboard,
		events:    events,
		balances:  balances,
		health:    health,
	}
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		failure(w, r, err)
		return
	}

	success(w, summary)
}

func (h *Handler) UserGrowth(w http.ResponseWriter, r *http.Request) {
	mode, err := viewMode(r)
	if err != nil {
		failure(w, r, err)
		return
	}

	growth, err := h.dashboard.UserGrowth(r.Context(), mode)
	if err != nil {
		failure(w, r, err)
		return
	}

	success(w, growth)
}

func (h *Handler) WalletAdoption(w http.ResponseWriter, r *http.Request) {
	mode, err := viewMode(r)
	if err != nil {
		failure(w, r, err)
		return
	}

	adoption, err := h.dashboard.WalletAdoption(r.Context(), mode)
	if err != nil {
		failure(w, r, err)
		return
	}

	success(w, adoption)
}

func (h *Handler) LookupBalance(w http.ResponseWriter, r *http.Request) {
	success(w, h.balances.Lookup(r.Context(), mux.Vars(r)["address"]))
}

func (h *Handler) BalanceState(w http.ResponseWriter, r *http.Request) {
	row, ok := h.balances.State(mux.Vars(r)["address"])
	if !ok {
		writeJSON(w, http.StatusNotFound, APIResponse{Error: ErrNoBalanceState.Error()})
		return
	}

	success(w, row)
}

func (h *Handler) Address(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	success(w, AddressView{Address: address, FriendlyAddress: services.ToFriendlyAddress(address)})
}

// Events answers for one category without touching the screen selection.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	mode, err := viewMode(r)
	if err != nil {
		failure(w, r, err)
		return
	}

	stats, err := h.dashboard.Events(r.Context(), mux.Vars(r)["category"], mode)
	if err != nil {
		failure(w, r, err)
		return
	}

	success(w, stats)
}

func (h *Handler) EventsSnapshot(w http.ResponseWriter, r *http.Request) {
	success(w, h.events.Snapshot())
}

func (h *Handler) SelectEvents(w http.ResponseWriter, r *http.Request) {
	mode, err := viewMode(r)
	if err != nil {
		failure(w, r, err)
		return
	}

	state, err := h.events.Select(r.Context(), mux.Vars(r)["category"], mode)
	if err != nil {
		failure(w, r, err)
		return
	}

	success(w, state)
}

func (h *Handler) Referrals(w http.ResponseWriter, r *http.Request) {
	report, err := h.dashboard.Referrals(r.Context())
	if err != nil {
		failure(w, r, err)
		return
	}

	success(w, report)
}

func (h *Handler) Levels(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.LevelFunnel(r.Context())
	if err != nil {
		failure(w, r, err)
		return
	}

	success(w, stats)
}

func (h *Handler) LevelDrift(w http.ResponseWriter, r *http.Request) {
	mismatches, err := h.dashboard.LevelDrift(r.Context())
	if err != nil {
		failure(w, r, err)
		return
	}

	success(w, mismatches)
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.dashboard.Leaderboard(r.Context())
	if err != nil {
		failure(w, r, err)
		return
	}

	success(w, entries)
}

func (h *Handler) Pools(w http.ResponseWriter, r *http.Request) {
	pools, err := h.dashboard.Pools(r.Context())
	if err != nil {
		failure(w, r, err)
		return
	}

	success(w, pools)
}

func (h *Handler) UserOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboard.UserOverview(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		failure(w, r, err)
		return
	}

	success(w, overview)
}

func (h *Handler) WebhookHealth(w http.ResponseWriter, r *http.Request) {
	if h.health == nil {
		failure(w, r, ErrStorageUnavailable)
		return
	}

	health, err := h.health.GetWebhookHealth(r.Context())
	if err != nil {
		failure(w, r, err)
		return
	}

	success(w, health)
}

func (h *Handler) WebhookProbes(w http.ResponseWriter, r *http.Request) {
	if h.health == nil {
		failure(w, r, ErrStorageUnavailable)
		return
	}

	probes, err := h.health.GetRecentProbes(r.Context(), mux.Vars(r)["webhook"], probeLimit(r))
	if err != nil {
		failure(w, r, err)
		return
	}

	success(w, probes)
}

func viewMode(r *http.Request) (services.ViewMode, error) {
	return services.ParseViewMode(r.URL.Query().Get("view"))
}

func probeLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return defaultProbeLimit
	}
	if limit > maxProbeLimit {
		return maxProbeLimit
	}

	return limit
}
