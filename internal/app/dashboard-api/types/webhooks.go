package types

// Webhook names as used in the catalog and in metrics labels.
const (
	WebhookSummary      = "summary"
	WebhookUsersDaily   = "users-daily"
	WebhookWallets      = "wallets"
	WebhookEvents       = "events"
	WebhookReferrals    = "referrals"
	WebhookLevelStats   = "level-stats"
	WebhookLeaderboard  = "leaderboard"
	WebhookPools        = "pools"
	WebhookUserOverview = "user-overview"
)

var AllWebhooks = []string{
	WebhookSummary,
	WebhookUsersDaily,
	WebhookWallets,
	WebhookEvents,
	WebhookReferrals,
	WebhookLevelStats,
	WebhookLeaderboard,
	WebhookPools,
	WebhookUserOverview,
}

// WebhookRequiredParams lists the query parameter a webhook cannot answer without.
var WebhookRequiredParams = map[string]string{
	WebhookEvents:       "category",
	WebhookUserOverview: "username",
}

// Event categories exposed by the events webhook.
const (
	EventCategoryAsics    = "asics"
	EventCategoryPools    = "pools"
	EventCategoryTasks    = "tasks"
	EventCategoryWallets  = "wallets"
	EventCategoryReferral = "referrals"
)

var EventCategories = []string{
	EventCategoryAsics,
	EventCategoryPools,
	EventCategoryTasks,
	EventCategoryWallets,
	EventCategoryReferral,
}
