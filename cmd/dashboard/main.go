package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/infrastructure"
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Mining game admin dashboard api",
	Long:  "Serves the normalized view-models of the admin dashboard and watches the health of its webhooks",
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file to load before reading the configuration")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the env file, if any, and builds the configuration from the environment.
func loadConfig(cmd *cobra.Command) (*infrastructure.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := godotenv.Load(envFile); err != nil {
		log.Warn().Msgf("No %s file found: %s", envFile, err)
	}

	config := infrastructure.NewConfig()
	if err := config.LoadWebhooks(); err != nil {
		return nil, err
	}

	infrastructure.InitLogger(config)

	return config, nil
}
