package main

import (
	"flag"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/clockworks/huepanel/internal/app"
	"github.com/clockworks/huepanel/internal/config"
	"github.com/clockworks/huepanel/internal/i18n"
	"github.com/clockworks/huepanel/internal/panel"
)

func main() {
	// Support both -c and --config for config path
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "config.yaml", "Path to configuration file (shorthand)")
	resetPairing := flag.Bool("reset-pairing", false, "Clear the stored bridge pairing on startup")
	flag.Parse()

	// Optional .env for HUE_BRIDGE / HUE_USERNAME overrides
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logging
	closeLog := setupLogging(cfg.Log)
	defer closeLog()

	log.Info().Str("config", configPath).Msg("Starting huepanel")

	// Create application
	application, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create application")
	}

	// Handle reset pairing flag
	if *resetPairing {
		log.Info().Msg("Clearing stored bridge pairing (--reset-pairing)")
		if err := application.ResetPairing(); err != nil {
			log.Warn().Err(err).Msg("Failed to clear pairing")
		}
	}

	// Create context that cancels on shutdown signal
	ctx := app.SignalContext()

	// Start background services
	if err := application.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	svc := application.Services()
	model := panel.New(svc.Bridge, i18n.New(cfg.UI.Locale), panel.Options{
		Debounce:       cfg.UI.Debounce.Duration(),
		SceneSettle:    cfg.UI.SceneSettle.Duration(),
		BrightnessStep: cfg.UI.BrightnessStep,
		Updates:        svc.Events.Updates(),
	})

	// Run the panel; quitting it (or a shutdown signal) ends the program
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("Panel terminated with error")
	}

	// Graceful shutdown
	if err := application.Stop(); err != nil {
		log.Error().Err(err).Msg("Error during shutdown")
	}
}

// setupLogging configures the global zerolog logger. The panel owns the
// terminal, so logs go to a file when configured and are discarded
// otherwise. The returned func closes the log file on exit.
func setupLogging(cfg config.LogConfig) func() {
	// ISO 8601 format with timezone
	zerolog.TimeFieldFormat = time.RFC3339

	closer := func() {}
	var out io.Writer = io.Discard
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			out = f
			closer = func() { f.Close() }
		}
	}

	if cfg.UseJSON {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
			NoColor:    !cfg.Colors,
		})
	}

	switch cfg.Level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return closer
}
