package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// errReported marks a failure that has already been printed to the user.
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:   "ghtrending [daily|weekly|monthly]",
	Short: "Show trending GitHub repositories",
	Long: `ghtrending fetches the public GitHub Trending page for the chosen
time range and prints the repositories in the terminal.

Run "ghtrending serve" to browse the same data in a web page.`,
	Args:          cobra.MaximumNArgs(1),
	ValidArgs:     []string{"daily", "weekly", "monthly"},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReport,
}

func init() {
	// Load .env file if present
	_ = godotenv.Load()

	setupLogging(os.Getenv("LOG_LEVEL"))
}

// setupLogging installs the default text logger on stderr.
func setupLogging(level string) {
	lvl := slog.LevelInfo
	if strings.EqualFold(level, "debug") {
		lvl = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
