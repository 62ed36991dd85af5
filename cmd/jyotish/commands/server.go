package commands

import (
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/sahadev/jyotish/config"
	"github.com/sahadev/jyotish/db"
	"github.com/sahadev/jyotish/errors"
	"github.com/sahadev/jyotish/server"
	"github.com/sahadev/jyotish/version"
)

// ServerCmd starts the jyotish web server
var ServerCmd = &cobra.Command{
	Use:     "server",
	Aliases: []string{"serve"},
	Short:   "Start the jyotish horoscope web server",
	Long:    `Launch the web server with the embedded birth-chart form, the JSON horoscope API and the SVG chart endpoint.`,
	RunE:    runServer,
}

var (
	serverPort   int
	serverDBPath string
	serverNoDB   bool
)

func init() {
	ServerCmd.Flags().IntVar(&serverPort, "port", 0, "Listen port (overrides config)")
	ServerCmd.Flags().StringVar(&serverDBPath, "db-path", "", "Usage tracking database path (overrides config)")
	ServerCmd.Flags().BoolVar(&serverNoDB, "no-db", false, "Disable LLM usage tracking")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	port := serverPort
	if port == 0 {
		port = cfg.GetServerPort()
	}

	dbPath := serverDBPath
	if dbPath == "" {
		dbPath = cfg.GetDatabasePath()
	}

	var database *sql.DB
	if !serverNoDB {
		database, err = db.Open(dbPath)
		if err != nil {
			pterm.Warning.Printf("Usage tracking disabled: %v\n", err)
			database = nil
		} else {
			defer database.Close()
		}
	}

	printStartupBanner(cfg, port, dbPath)

	srv := server.New(cfg, database)

	if configPath := config.ProjectConfigPath(); configPath != "" {
		watcher, werr := config.NewConfigWatcher(configPath)
		if werr != nil {
			pterm.Warning.Printf("Config hot reload disabled: %v\n", werr)
		} else {
			watcher.OnReload(srv.UpdateConfig)
			watcher.Start()
			defer watcher.Stop()
			pterm.Info.Printf("Watching %s for changes\n", configPath)
		}
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(port)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return errors.Wrap(err, "server failed to start")
	case <-sigChan:
		pterm.Info.Println("\nShutting down gracefully (press Ctrl+C again to force)...")

		shutdownDone := make(chan error, 1)
		go func() {
			shutdownDone <- srv.Stop()
		}()

		select {
		case err := <-shutdownDone:
			if err != nil {
				return fmt.Errorf("shutdown error: %w", err)
			}
			pterm.Success.Println("Server stopped cleanly")
			return nil
		case <-sigChan:
			pterm.Warning.Println("\nForce shutdown - exiting immediately")
			os.Exit(1)
			return nil // unreachable
		}
	}
}

func printStartupBanner(cfg *config.Config, port int, dbPath string) {
	info := version.Get()

	pterm.DefaultBox.WithTitle("jyotish server").Println(
		fmt.Sprintf("Version:   %s\nURL:       http://localhost:%d\nDatabase:  %s\nAyanamsa:  %s\nChart:     %s",
			info.Short(), port, dbPath, cfg.Ephemeris.Ayanamsa, cfg.GetChartStyle()))

	if cfg.LocalInference.Enabled {
		pterm.Info.Printf("Local inference: %s (%s)\n", cfg.LocalInference.BaseURL, cfg.LocalInference.Model)
	} else if cfg.OpenRouter.APIKey != "" {
		pterm.Info.Printf("OpenRouter model: %s\n", cfg.OpenRouter.Model)
	} else {
		pterm.Warning.Println("No LLM provider configured, readings use the local fallback")
	}
}
