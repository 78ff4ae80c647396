package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/services"
)

var addressCmd = &cobra.Command{
	Use:   "address [address...]",
	Short: "Print the user-friendly form of wallet addresses",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, addr := range args {
			fmt.Fprintln(cmd.OutOrStdout(), services.ToFriendlyAddress(addr))
		}
	},
}

func init() {
	rootCmd.AddCommand(addressCmd)
}
