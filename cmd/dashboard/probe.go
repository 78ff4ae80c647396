package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/infrastructure"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/requesters"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/services"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Probe every webhook once",
	Long:  "Probe every catalogued webhook once, store the results and print the health of each webhook",
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	storage, err := openHealthStore(cmd.Context(), infrastructure.NewProvider(config))
	if err != nil {
		return err
	}
	defer storage.Close()

	helper := infrastructure.NewHelper(config)
	healthService := services.NewHealthService(config, requesters.NewRequester(config), helper)
	if err := healthService.Execute(cmd.Context(), storage); err != nil {
		return err
	}

	health, err := storage.GetWebhookHealth(cmd.Context())
	if err != nil {
		return err
	}

	for _, h := range health {
		if h.LastOk {
			log.Info().Msgf("%s: ok", h.Webhook)
			continue
		}
		log.Warn().Msgf("%s: %s (status %d), %d failures in a row", h.Webhook, h.LastCause, h.LastStatusCode, h.ConsecutiveFailures)
	}

	return nil
}
