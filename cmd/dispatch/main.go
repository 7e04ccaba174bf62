package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/mark3labs/dispatch/internal/config"
	"github.com/mark3labs/dispatch/internal/logger"
	"github.com/mark3labs/dispatch/internal/store"
	"github.com/mark3labs/dispatch/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▀▄ █ █▀▀ █▀█ ▄▀█ ▀█▀ █▀▀ █ █"
	logoText2 = "█▄▀ █ ▄▄█ █▀▀ █▀█  █  █▄▄ █▀█"
)

// Version set via ldflags during build
var version = "dev"

// cfg is loaded once per invocation before any command runs.
var cfg *config.Config

var rootFlags struct {
	dataDir string
	actor   string
}

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "dispatch",
	Short:             "Field service calls and delivery certificates from the terminal",
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
}

func loadConfig(cmd *cobra.Command, args []string) error {
	// A missing .env is normal
	_ = godotenv.Load()

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if rootFlags.dataDir != "" {
		loaded.DataDir = rootFlags.dataDir
	}
	if rootFlags.actor != "" {
		loaded.Actor = rootFlags.actor
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	if err := logger.Configure(loaded.LogLevel, loaded.LogFile); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	cfg = loaded
	logger.Debug("Config loaded: data_dir=%s actor=%s", cfg.DataDir, cfg.Actor)
	return nil
}

// openStore connects to the dispatch store for the configured data dir.
func openStore(ctx context.Context) (*store.Store, func(), error) {
	st, closeFn, err := store.Open(ctx, cfg.NATSDir(), cfg.Actor)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	cleanup := func() {
		if err := closeFn(); err != nil {
			logger.Warn("Closing store: %v", err)
		}
	}
	return st, cleanup, nil
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := gradient(logoText1, t.Primary, t.Secondary)
	line2 := gradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func gradient(text, from, to string) string {
	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		pos := 0.0
		if len(runes) > 1 {
			pos = float64(i) / float64(len(runes)-1)
		}
		color := lipgloss.Color(theme.InterpolateColor(from, to, pos))
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(r)))
	}
	return b.String()
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

dispatch schedules field service calls (concrete pumping, cranes, transport)
and turns them into delivery certificates. Calls and certificates are entered
through step-by-step wizards, stored in embedded NATS JetStream, and can be
previewed, printed or exported to PDF and XLSX.`

	rootCmd.PersistentFlags().StringVar(&rootFlags.dataDir, "data-dir", "", "Data directory (default: from config or .dispatch)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.actor, "actor", "", "Profile id writes are attributed to")

	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(certCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(docCmd)
	rootCmd.AddCommand(disputeCmd)
	rootCmd.AddCommand(customerCmd)
	rootCmd.AddCommand(operatorCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
