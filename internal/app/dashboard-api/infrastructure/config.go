package infrastructure

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

type Config struct {
	ListenAddress             string
	WebhookBaseURL            string
	WebhooksFile              string
	WebhookTimeout            time.Duration
	Webhooks                  WebhookCatalog
	TonCenterURL              string
	TonCenterV3URL            string
	TonCenterAPIKey           string
	TonAPIURL                 string
	TonAPIKey                 string
	ExplorerRequestsPerSecond float64
	ExplorerTimeout           time.Duration
	CoingeckoURL              string
	PriceTokenId              string
	PriceCurrency             string
	DbDriverName              string
	DbHost                    string
	DbPort                    string
	DbUser                    string
	DbPassword                string
	DbName                    string
	DbSSLMode                 string
	HealthCheckEnabled        bool
	WorkerProcessInterval     time.Duration
	WorkerFailureRetryDelay   time.Duration
	ServiceMaxErrorCount      int
	WebhookAlertAfterFailures int
	ProbeRetention            time.Duration
	ProbeQueries              map[string]url.Values
	MailFromAddress           string
	MailToAddress             string
	SendgridApiKey            string
	LogLevel                  string
	LogFormat                 string
	LogFile                   string
	CORSAllowedOrigins        []string
}

// NewConfig New returns a new Config struct
func NewConfig() *Config {
	config := &Config{
		ListenAddress:             getEnv("LISTEN_ADDRESS", ":8080"),
		WebhookBaseURL:            getEnv("WEBHOOK_BASE_URL", "http://localhost:5678/webhook"),
		WebhooksFile:              getEnv("WEBHOOKS_FILE", ""),
		WebhookTimeout:            getEnvAsDuration("WEBHOOK_TIMEOUT", time.Second*30),
		TonCenterURL:              getEnv("TONCENTER_URL", "https://toncenter.com/api/v2"),
		TonCenterV3URL:            getEnv("TONCENTER_V3_URL", "https://toncenter.com/api/v3"),
		TonCenterAPIKey:           getEnv("TONCENTER_API_KEY", ""),
		TonAPIURL:                 getEnv("TONAPI_URL", "https://tonapi.io/v2"),
		TonAPIKey:                 getEnv("TONAPI_KEY", ""),
		ExplorerRequestsPerSecond: getEnvAsFloat64("EXPLORER_REQUESTS_PER_SECOND", 1),
		ExplorerTimeout:           getEnvAsDuration("EXPLORER_TIMEOUT", time.Second*15),
		CoingeckoURL:              getEnv("COINGECKO_URL", "https://api.coingecko.com/api/v3"),
		PriceTokenId:              getEnv("PRICE_TOKEN_ID", "the-open-network"),
		PriceCurrency:             getEnv("PRICE_CURRENCY", "usd"),
		DbDriverName:              getEnv("DB_DRIVER_NAME", "postgres"),
		DbHost:                    getEnv("DB_HOST", ""),
		DbPort:                    getEnv("DB_PORT", "5432"),
		DbUser:                    getEnv("DB_USER", ""),
		DbPassword:                getEnv("DB_PASSWORD", ""),
		DbName:                    getEnv("DB_NAME", ""),
		DbSSLMode:                 getEnv("DB_SSL_MODE", "disable"),
		HealthCheckEnabled:        getEnvAsBool("HEALTH_CHECK_ENABLED", false),
		WorkerProcessInterval:     getEnvAsDuration("WORKER_PROCESS_INTERVAL", time.Minute*5),
		WorkerFailureRetryDelay:   getEnvAsDuration("WORKER_FAILURE_RETRY_DELAY", time.Second*5),
		ServiceMaxErrorCount:      getEnvAsInt("SERVICE_MAX_ERROR_COUNT", 5),
		WebhookAlertAfterFailures: getEnvAsInt("WEBHOOK_ALERT_AFTER_FAILURES", 3),
		ProbeRetention:            getEnvAsDuration("PROBE_RETENTION", time.Hour*24*7),
		MailFromAddress:           getEnv("MAIL_FROM_ADDRESS", ""),
		MailToAddress:             getEnv("MAIL_TO_ADDRESS", ""),
		SendgridApiKey:            getEnv("SENDGRID_API_KEY", ""),
		LogLevel:                  getEnv("LOG_LEVEL", "info"),
		LogFormat:                 getEnv("LOG_FORMAT", "json"),
		LogFile:                   getEnv("LOG_FILE", ""),
		CORSAllowedOrigins:        getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}, ","),
	}

	config.Webhooks = DefaultWebhookCatalog(config.WebhookBaseURL)
	config.ProbeQueries = probeQueries(getEnv("PROBE_EVENTS_CATEGORY", types.EventCategoryAsics), getEnv("PROBE_USERNAME", ""))

	return config
}

// probeQueries builds the query the health check sends to parameterised webhooks.
// An empty value leaves the webhook out of the health check.
func probeQueries(category, username string) map[string]url.Values {
	queries := map[string]url.Values{}
	if category != "" {
		queries[types.WebhookEvents] = url.Values{"category": {category}}
	}
	if username != "" {
		queries[types.WebhookUserOverview] = url.Values{"username": {username}}
	}

	return queries
}

// Simple helper function to read an environment or return a default value
func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

// Simple helper function to read an environment variable into integer or return a default value
func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}

	return defaultVal
}

// Simple helper function to read an environment variable into float64 or return a default value
func getEnvAsFloat64(name string, defaultVal float64) float64 {
	valueStr := getEnv(name, "")
	if value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64); err == nil {
		return value
	}

	return defaultVal
}

// Helper to read an environment variable into a bool or return default value
func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

// Helper to read an environment variable into a string slice or return default value
func getEnvAsSlice(name string, defaultVal []string, sep string) []string {
	valStr := getEnv(name, "")

	if valStr == "" {
		return defaultVal
	}

	val := strings.Split(valStr, sep)
	for i := range val {
		val[i] = strings.TrimSpace(val[i])
	}

	return val
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valStr := getEnv(name, "")
	if valStr == "" {
		return defaultVal
	}
	if duration, err := time.ParseDuration(valStr); err == nil {
		return duration
	}
	return defaultVal
}

// LoadWebhooks replaces the default catalog with the one from WebhooksFile, if set.
func (c *Config) LoadWebhooks() error {
	if c.WebhooksFile == "" {
		return nil
	}

	catalog, err := LoadWebhookCatalog(c.WebhooksFile, c.WebhookBaseURL)
	if err != nil {
		return err
	}

	c.Webhooks = catalog
	return nil
}
