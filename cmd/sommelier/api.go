package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/sommelier/internal/api"
	"github.com/jackzampolin/sommelier/internal/server/endpoints"
)

var serverURL string

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Session and history commands",
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Configuration settings commands",
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Backend call metrics commands",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Session, settings and metrics commands are grouped; the rest sit directly under api.
	for _, ep := range endpoints.SessionCommands() {
		sessionsCmd.AddCommand(ep.Command(getServerURL))
	}
	for _, ep := range endpoints.SettingsCommands() {
		settingsCmd.AddCommand(ep.Command(getServerURL))
	}
	for _, ep := range endpoints.MetricsCommands() {
		metricsCmd.AddCommand(ep.Command(getServerURL))
	}

	reg := api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{}) {
		if isGrouped(ep) {
			continue
		}
		reg.Register(ep)
	}
	apiCmd := reg.BuildCommands(getServerURL)

	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	apiCmd.AddCommand(sessionsCmd)
	apiCmd.AddCommand(settingsCmd)
	apiCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(apiCmd)
}

// isGrouped reports whether ep's command lives under a group command.
func isGrouped(ep api.Endpoint) bool {
	switch ep.(type) {
	case *endpoints.CreateSessionEndpoint, *endpoints.ListSessionsEndpoint,
		*endpoints.DeleteSessionEndpoint, *endpoints.SessionHistoryEndpoint,
		*endpoints.GetRecordEndpoint, *endpoints.ExportRecordEndpoint,
		*endpoints.ListSettingsEndpoint, *endpoints.GetSettingEndpoint,
		*endpoints.ListMetricsEndpoint, *endpoints.MetricsSummaryEndpoint:
		return true
	}
	return false
}
