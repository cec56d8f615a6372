package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"airline-desk-cli/tui"
)

var rootCmd = &cobra.Command{
	Use:   "airline-desk",
	Short: "Terminal console for the airline reservation service",
	Long: `airline-desk is a terminal console for an airline reservation service.

Without arguments it opens the interactive console: browse flights, pick
seats, book them for customers, cancel bookings and swap seats between
confirmed bookings. Subcommands expose the same data for scripting.

The reservation service address is read from AIRDESK_API_URL.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		program := tea.NewProgram(tui.New(), tea.WithAltScreen())
		_, err := program.Run()
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("airline-desk v1.0.0")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(flightsCmd)
	rootCmd.AddCommand(customersCmd)
	rootCmd.AddCommand(bookingsCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
