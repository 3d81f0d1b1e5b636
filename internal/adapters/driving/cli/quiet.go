package cli

import (
	"time"

	"github.com/spf13/cobra"
)

var quietCmd = &cobra.Command{
	Use:   "quiet",
	Short: "Show whether quiet hours are active",
	RunE:  runQuiet,
}

func init() {
	rootCmd.AddCommand(quietCmd)
}

func runQuiet(cmd *cobra.Command, _ []string) error {
	loader, _, err := loadConfig()
	if err != nil {
		return err
	}

	settings := loader.Current()
	now := settings.Now(time.Now)
	w := settings.Quiet

	if w.Empty() {
		cmd.Printf("Quiet hours are disabled (start and end are both %02d:00).\n", w.StartHour)
		return nil
	}

	quiet, secs := w.Check(now)
	boundary := now.Add(time.Duration(secs) * time.Second)
	if quiet {
		cmd.Printf("Quiet hours active (%02d:00-%02d:00), display resumes at %s (in %s).\n",
			w.StartHour, w.EndHour, boundary.Format("15:04"), time.Duration(secs)*time.Second)
		return nil
	}
	cmd.Printf("Display active, quiet hours (%02d:00-%02d:00) start at %s (in %s).\n",
		w.StartHour, w.EndHour, boundary.Format("15:04"), time.Duration(secs)*time.Second)
	return nil
}
