package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inkpanel/internal/app"
	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/logger"
)

var (
	refreshStories bool
	refreshForce   bool
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Draw one frame and exit",
	Long: `Run a single refresh cycle outside the daemon: select the mode, fetch
its data and draw it. Inside quiet hours nothing is drawn unless --force
is given.

With --stories the story region is also advanced by one page.`,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshStories, "stories", false, "also advance the story page")
	refreshCmd.Flags().BoolVarP(&refreshForce, "force", "f", false, "draw even during quiet hours")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	loader, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	opts := appOptions
	opts.Logger = logger.Default()
	a, err := app.New(cmd.Context(), loader, opts)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	cycle := a.Orchestrator.RunCycle
	if refreshForce {
		cycle = a.Orchestrator.ForceCycle
	}
	rec, err := cycle(cmd.Context())
	if errors.Is(err, domain.ErrQuietHours) {
		cmd.Printf("Quiet hours are active, nothing drawn (%v). Use --force to draw anyway.\n", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	if rec.DemotedFrom != "" {
		cmd.Printf("Drew %s (no content for %s) in %s.\n", rec.Mode, rec.DemotedFrom, rec.Duration().Round(time.Millisecond))
	} else {
		cmd.Printf("Drew %s in %s.\n", rec.Mode, rec.Duration().Round(time.Millisecond))
	}

	if refreshStories {
		page, err := a.Pagination.Tick(cmd.Context())
		if err != nil {
			return fmt.Errorf("story page failed: %w", err)
		}
		cmd.Printf("Showing stories page %d of %d.\n", page.Page, page.TotalPages)
	}
	return nil
}
