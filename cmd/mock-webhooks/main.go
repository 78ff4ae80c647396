package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// Serves canned webhook payloads under /webhook so the api can run without the automation backend.
// Payloads come in the different shapes the real workflows produce.
func main() {
	r := mux.NewRouter()
	webhooks := r.PathPrefix("/webhook").Subrouter()
	webhooks.HandleFunc("/dashboard-stats", rawHandler(dashboardStats))
	webhooks.HandleFunc("/new-users-by-day", getNewUsersByDayHandler())
	webhooks.HandleFunc("/wallets-by-day", getWalletsByDayHandler())
	webhooks.HandleFunc("/game-events", getGameEventsHandler())
	webhooks.HandleFunc("/referral-report", rawHandler(referralReport))
	webhooks.HandleFunc("/level-stats", rawHandler(levelStats))
	webhooks.HandleFunc("/leaderboard", rawHandler(leaderboard))
	webhooks.HandleFunc("/pools", rawHandler(pools))
	webhooks.HandleFunc("/user-overview", getUserOverviewHandler())

	log.Info().Msg(fmt.Sprintf("Listening on port: %d", listeningPort))
	srv := &http.Server{
		Handler:      r,
		Addr:         fmt.Sprintf(":%d", listeningPort),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(fmt.Errorf("error while listening: %s", err)).Send()
	}
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Send()
	}
}

func rawHandler(body string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, json.RawMessage(body))
	}
}

// lastDays returns the previous n days as YYYY-MM-DD, oldest first.
func lastDays(n int) []string {
	today := time.Now().UTC()
	days := make([]string, 0, n)
	for i := n; i > 0; i-- {
		days = append(days, today.AddDate(0, 0, -i).Format("2006-01-02"))
	}

	return days
}

func getNewUsersByDayHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		languages := []string{"en", "ru", "uk", "es"}
		rows := []map[string]interface{}{}
		for i, day := range lastDays(45) {
			rows = append(rows, map[string]interface{}{
				"date":     day,
				"count":    fmt.Sprint(20 + i),
				"language": languages[i%len(languages)],
				"premium":  i % 3,
			})
		}

		// n8n wraps the rows of a single item
		writeJSON(w, []map[string]interface{}{{"users": rows}})
	}
}

func getWalletsByDayHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		rows := []map[string]interface{}{}
		for i, day := range lastDays(30) {
			rows = append(rows, map[string]interface{}{"day": day, "new_wallets": 3 + i%5})
		}

		writeJSON(w, map[string]interface{}{
			"wallets":       rows,
			"total_wallets": 412,
			"total_users":   1523,
		})
	}
}

func getGameEventsHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		if category == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		rows := []map[string]interface{}{}
		for i, day := range lastDays(21) {
			rows = append(rows, map[string]interface{}{"date": day, "category": category, "count": i%7 + len(category)})
		}

		writeJSON(w, map[string]interface{}{"rows": rows})
	}
}

func getUserOverviewHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimPrefix(r.URL.Query().Get("username"), "@")
		user, ok := users[strings.ToLower(username)]
		if !ok {
			writeJSON(w, []interface{}{})
			return
		}

		writeJSON(w, []map[string]interface{}{user})
	}
}

var users = map[string]map[string]interface{}{
	"satoshi_miner": {
		"user_id":        "100200300",
		"username":       "satoshi_miner",
		"language_code":  "en",
		"is_premium":     true,
		"asic_count":     "14",
		"th":             "812.5",
		"referrals":      9,
		"wallet_address": "0:83dfd552e63729b472fcbcc8c45ebcc6691702558b68ec7527e1ba403a0f31a8",
		"mined_sats":     "1834000",
		"events_total":   231,
		"registered_at":  "2024-01-14",
		"last_active_at": "2024-03-09",
	},
	"hashqueen": {
		"id":            200300400,
		"username":      "@hashqueen",
		"language":      "ru",
		"asics":         3,
		"total_th":      45.2,
		"invites":       "2",
		"mined":         120500,
		"created_at":    "2024-02-02",
		"updated_at":    "2024-03-10",
		"events_total":  "17",
		"premium":       false,
		"wallet":        "",
		"referrals_url": "https://t.me/game?start=hashqueen",
	},
}

const dashboardStats = `[{"total_users": "1523", "new_users_today": 31, "active_users": "402", "premium_users": 118, "total_wallets": 412, "total_pools": 17, "total_th": "25011.75"}]`

const referralReport = `[{"output": "<b>Total invites:</b> 342\n<b>Top referrers:</b>\nsatoshi_miner — 41\nhashqueen — 27\nasic_lord — 12\n\n<b>By day:</b>\n2024-03-08 — 14\n2024-03-09 — 22\n2024-03-10 — 9"}]`

const levelStats = `{"level_stats": [
	{"level": 0, "users_per_level": "640"},
	{"level": 1, "users_per_level": "390"},
	{"level": 2, "users_per_level": 210},
	{"level": 3, "users_per_level": 120},
	{"level": 4, "users_per_level": 71},
	{"level": 5, "users_per_level": 44},
	{"level": 6, "users_per_level": 23},
	{"level": 8, "users_per_level": 9},
	{"level": 10, "users_per_level": 2}
]}`

const leaderboard = `[
	{"user_id": 100200300, "username": "satoshi_miner", "asic_count": 14, "th": "812.5", "avatar_url": "https://example.com/a.png"},
	{"user_id": "200300400", "username": "hashqueen", "asics": "3", "total_th": 45.2},
	{"telegram_id": 300400500, "first_name": "Lord", "total_asics": 2, "hashrate": "12"}
]`

const pools = `{"data": [
	{"pool_id": 1, "name": "Deep Core", "owner": "satoshi_miner", "members_count": "48", "total_th": "3120.4"},
	{"id": "2", "pool_name": "Night Shift", "owner_username": "hashqueen", "members": 12, "th": 402}
]}`

const listeningPort = 5678
