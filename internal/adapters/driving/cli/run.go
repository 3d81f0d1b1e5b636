package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/inkpanel/internal/adapters/driving/mcp"
	"github.com/custodia-labs/inkpanel/internal/app"
	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/logger"
)

var runNoBanner bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the refresh daemon",
	Long: `Run the refresh loop until interrupted.

The panel is initialised and cleared, then refreshed according to the
selected mode's interval. Story pagination runs in the background when
enabled. Editing the config file applies the change immediately.

When [mcp] port is set, an MCP server is served over HTTP on that port with
the refresh_display, display_status and quiet_status tools.`,
	RunE: runDaemon,
}

func init() {
	runCmd.Flags().BoolVar(&runNoBanner, "no-banner", false, "skip the startup banner")
	rootCmd.AddCommand(runCmd)
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	loader, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}
	log := logger.Default()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := appOptions
	opts.Logger = log
	a, err := app.New(ctx, loader, opts)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	if !runNoBanner && isTerminal(os.Stdout) {
		cmd.Println(banner(loader.Path(), cfg))
	}

	a.SyncPagination(loader.Current())
	loader.OnReload(func(s domain.Settings) {
		a.Orchestrator.NotifyConfigChanged()
		a.SyncPagination(s)
	})
	loader.Watch()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Orchestrator.Run(gctx)
	})

	if cfg.MCP.Port > 0 {
		server, err := mcp.NewServer(&mcp.Ports{
			Orchestrator: a.Orchestrator,
			Status:       a.Status,
			History:      a.History,
		})
		if err != nil {
			return err
		}
		addr := fmt.Sprintf(":%d", cfg.MCP.Port)
		log.Info("mcp server listening", "addr", addr)
		g.Go(func() error {
			return server.RunHTTP(gctx, addr)
		})
	}

	err = g.Wait()
	log.Info("shutting down")
	a.Shutdown(domain.DefaultCleanupTimeout, log)

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
