package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(courtsCmd)
	rootCmd.AddCommand(bookingsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var courtsCmd = &cobra.Command{
	Use:   "courts",
	Short: "List the courts in the club",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/courts")
	},
}

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List your bookings (requires --token)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/my/bookings")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the club leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players [query]",
	Short: "Search the player directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/players"
		if len(args) > 0 {
			endpoint += "?q=" + args[0]
		}
		return performGetRequest(endpoint)
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

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
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
