package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	tournamentID string
	roundID      string
	dryRun       bool
)

func init() {
	standingsCmd.Flags().StringVar(&tournamentID, "id", "", "The tournament ID")
	standingsCmd.MarkFlagRequired("id")
	standingsCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Do not persist generated pairings")
	minigamesCmd.Flags().StringVar(&tournamentID, "id", "", "The tournament ID")
	minigamesCmd.MarkFlagRequired("id")
	pairingsCmd.Flags().StringVar(&tournamentID, "id", "", "The tournament ID")
	pairingsCmd.MarkFlagRequired("id")
	pairingsCmd.Flags().StringVar(&roundID, "round", "", "Limit output to one round")
	pairingsCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Do not persist generated pairings")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(minigamesCmd)
	rootCmd.AddCommand(pairingsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments",
	Short: "List all tournaments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/tournaments")
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Compute and print the standings for a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{"id": {tournamentID}}
		if dryRun {
			q.Set("dry_run", "true")
		}
		return performGetRequest("/standings?" + q.Encode())
	},
}

var minigamesCmd = &cobra.Command{
	Use:   "minigames",
	Short: "Print the mini-game leaderboard for a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{"id": {tournamentID}}
		return performGetRequest("/minigames?" + q.Encode())
	},
}

var pairingsCmd = &cobra.Command{
	Use:   "pairings",
	Short: "Resolve and print the scramble pairings for a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{"id": {tournamentID}}
		if roundID != "" {
			q.Set("round", roundID)
		}
		if dryRun {
			q.Set("dry_run", "true")
		}
		return performGetRequest("/pairings?" + q.Encode())
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
