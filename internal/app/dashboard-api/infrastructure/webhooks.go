package infrastructure

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

// WebhookCatalog maps webhook names to absolute URLs.
type WebhookCatalog map[string]string

type webhooksFile struct {
	BaseURL  string            `yaml:"base_url"`
	Webhooks map[string]string `yaml:"webhooks"`
}

var defaultWebhookPaths = map[string]string{
	types.WebhookSummary:      "dashboard-stats",
	types.WebhookUsersDaily:   "new-users-by-day",
	types.WebhookWallets:      "wallets-by-day",
	types.WebhookEvents:       "game-events",
	types.WebhookReferrals:    "referral-report",
	types.WebhookLevelStats:   "level-stats",
	types.WebhookLeaderboard:  "leaderboard",
	types.WebhookPools:        "pools",
	types.WebhookUserOverview: "user-overview",
}

func DefaultWebhookCatalog(baseURL string) WebhookCatalog {
	catalog := make(WebhookCatalog, len(defaultWebhookPaths))
	for name, path := range defaultWebhookPaths {
		catalog[name] = joinURL(baseURL, path)
	}

	return catalog
}

// LoadWebhookCatalog overlays the entries of a YAML file on top of the
// default catalog. Entries may be absolute URLs or paths relative to base_url.
func LoadWebhookCatalog(path string, defaultBaseURL string) (WebhookCatalog, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error while reading webhooks file %s: %w", path, err)
	}

	var file webhooksFile
	if err := yaml.Unmarshal(bz, &file); err != nil {
		return nil, fmt.Errorf("error while parsing webhooks file %s: %w", path, err)
	}

	baseURL := defaultBaseURL
	if file.BaseURL != "" {
		baseURL = file.BaseURL
	}

	catalog := DefaultWebhookCatalog(baseURL)
	for name, target := range file.Webhooks {
		if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
			catalog[name] = target
			continue
		}
		catalog[name] = joinURL(baseURL, target)
	}

	return catalog, nil
}

func (c WebhookCatalog) URL(name string) (string, bool) {
	url, ok := c[name]
	return url, ok && url != ""
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
