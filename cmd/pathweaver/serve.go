package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aetherlearn/pathweaver/internal/server"
	"github.com/aetherlearn/pathweaver/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Start the REST API server exposing search initiation, status polling,
learning path retrieval and customization endpoints.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("config", "", "Path to JSON config file")
	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
	serveCmd.Flags().Bool("enrich", false, "Fetch content pages to fill missing metadata")
	serveCmd.Flags().Int("rate-limit", 0, "Max search requests per client per minute (0 disables)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	addr, _ := cmd.Flags().GetString("addr")
	enrich, _ := cmd.Flags().GetBool("enrich")
	rateLimit, _ := cmd.Flags().GetInt("rate-limit")

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.ListenAddr = addr
	}
	if enrich {
		cfg.EnrichResults = true
	}

	manager, cleanup, err := buildManager(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	serverCfg := server.Config{Addr: cfg.ListenAddr}
	if rateLimit > 0 {
		serverCfg.RateLimit = &ratelimit.Config{
			Enabled: true,
			Limit:   rateLimit,
			Window:  time.Minute,
		}
	}

	srv := server.New(manager, serverCfg)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
