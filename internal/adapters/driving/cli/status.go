package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inkpanel/internal/app"
	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/logger"
)

var statusDays int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the display is doing",
	Long: `Show quiet state, the mode a refresh would draw now, the story page,
cache ages, upcoming holidays and the most recent runs.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().IntVar(&statusDays, "days", 30, "look ahead this many days for holidays")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	loader, _, err := loadConfig()
	if err != nil {
		return err
	}

	opts := appOptions
	opts.Logger = logger.Default()
	a, err := app.New(cmd.Context(), loader, opts)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	st, err := a.Status.Status(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("Time:           %s\n", st.Now.Format("2006-01-02 15:04 MST"))
	if st.Quiet {
		cmd.Printf("Quiet hours:    active, %s remaining\n", time.Duration(st.SecondsUntilBoundary)*time.Second)
	} else {
		cmd.Println("Quiet hours:    inactive")
	}
	cmd.Printf("Configured:     %s\n", st.ConfiguredMode)
	cmd.Printf("Would draw:     %s\n", st.SelectedMode)
	if st.CurrentPage > 0 {
		cmd.Printf("Story page:     %d\n", st.CurrentPage)
	}

	entries, err := a.Caches.List()
	if err != nil {
		return fmt.Errorf("listing caches: %w", err)
	}
	if len(entries) > 0 {
		cmd.Println("\nCaches:")
		for _, e := range entries {
			cmd.Printf("  %-12s %s old\n", e.Name, time.Since(e.ModifiedAt).Round(time.Second))
		}
	}

	if upcoming := a.Calendar.Upcoming(st.Now, statusDays); len(upcoming) > 0 {
		cmd.Println("\nUpcoming:")
		for _, e := range upcoming {
			cmd.Printf("  %s  %s\n", e.Date.Format("Jan 02"), e.Holiday.Name)
		}
	}

	if len(st.Recent) > 0 {
		cmd.Println("\nRecent runs:")
		for _, r := range st.Recent {
			cmd.Printf("  %s  %-10s %s\n", r.StartedAt.Local().Format("01-02 15:04:05"), r.Activity, describeRun(r))
		}
	}
	return nil
}

func describeRun(r domain.RunRecord) string {
	var what string
	switch {
	case r.Activity == domain.ActivityPagination:
		what = fmt.Sprintf("page %d", r.Page)
	case r.DemotedFrom != "":
		what = fmt.Sprintf("%s (from %s)", r.Mode, r.DemotedFrom)
	default:
		what = r.Mode
	}
	if !r.Success {
		return what + "  failed: " + r.Error
	}
	return what
}
