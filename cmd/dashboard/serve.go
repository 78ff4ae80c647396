package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/BitOpenCode/DashboardGameV1-sub000/client/coingecko"
	worker "github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/api"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/infrastructure"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/requesters"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/services"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/sql_db"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard api",
	Long:  "Run the dashboard api and, when HEALTH_CHECK_ENABLED is set, the webhook health worker",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, ctxCancel := context.WithCancel(ctx)
	defer ctxCancel()

	requester := requesters.NewRequester(config)
	helper := infrastructure.NewHelper(config)
	provider := infrastructure.NewProvider(config)

	dashboardService := services.NewDashboardService(requester, helper)
	balanceService := services.NewBalanceService(
		balanceProviders(config),
		coingecko.NewClient(config.CoingeckoURL, config.ExplorerTimeout),
		config.PriceTokenId,
		config.PriceCurrency,
	)

	var health api.HealthStore
	if config.HealthCheckEnabled {
		storage, err := openHealthStore(ctx, provider)
		if err != nil {
			log.Error().Msgf("webhook health endpoints disabled: %s", err)
		} else {
			defer storage.Close()
			health = storage
		}

		mutex := sync.Mutex{}
		healthService := services.NewHealthService(config, requester, helper)
		go worker.Start(ctx, ctxCancel, config, healthService, provider, &mutex, config.WorkerProcessInterval)
	}

	handler := api.NewHandler(dashboardService, services.NewEventsScreen(dashboardService), balanceService, health)

	srv := &http.Server{
		Handler:      api.NewRouter(handler, config.CORSAllowedOrigins),
		Addr:         config.ListenAddress,
		WriteTimeout: config.WebhookTimeout + 15*time.Second,
		ReadTimeout:  15 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error while shutting down the server")
		}
	}()

	log.Info().Msgf("Listening on %s", config.ListenAddress)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// openHealthStore connects to the database and creates the probe tables if they are missing.
func openHealthStore(ctx context.Context, provider *infrastructure.Provider) (*sql_db.SqlDB, error) {
	db, err := provider.InitDBConnection()
	if err != nil {
		return nil, fmt.Errorf("could not connect to db: %w", err)
	}

	storage := sql_db.NewSqlDB(db)
	if err := storage.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not migrate db: %w", err)
	}

	return storage, nil
}

func balanceProviders(config *infrastructure.Config) []services.BalanceProvider {
	explorers := requesters.NewExplorerProviders(config)

	providers := make([]services.BalanceProvider, 0, len(explorers))
	for _, explorer := range explorers {
		providers = append(providers, explorer)
	}

	return providers
}
