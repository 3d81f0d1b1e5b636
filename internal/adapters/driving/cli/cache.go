package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	filestore "github.com/custodia-labs/inkpanel/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/inkpanel/internal/app"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear content caches",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached content",
	RunE:  runCacheList,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [name...]",
	Short: "Delete cached content",
	Long: `Delete cached content so the next cycle fetches it live.
Without names every cache is cleared.`,
	RunE: runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openCacheStore() (*filestore.CacheStore, error) {
	dataDir, _, err := app.Dirs(appOptions)
	if err != nil {
		return nil, err
	}
	return filestore.NewCacheStore(dataDir)
}

func runCacheList(cmd *cobra.Command, _ []string) error {
	store, err := openCacheStore()
	if err != nil {
		return err
	}
	entries, err := store.List()
	if err != nil {
		return fmt.Errorf("listing caches: %w", err)
	}
	if len(entries) == 0 {
		cmd.Println("No cached content.")
		return nil
	}

	now := time.Now()
	for _, e := range entries {
		cmd.Printf("%-12s %6d bytes  written %s ago\n", e.Name, e.Size, now.Sub(e.ModifiedAt).Round(time.Second))
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	store, err := openCacheStore()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		entries, err := store.List()
		if err != nil {
			return fmt.Errorf("listing caches: %w", err)
		}
		for _, e := range entries {
			names = append(names, e.Name)
		}
	}

	for _, name := range names {
		if err := store.Delete(name); err != nil {
			return fmt.Errorf("clearing %s: %w", name, err)
		}
		cmd.Printf("Cleared %s.\n", name)
	}
	if len(names) == 0 {
		cmd.Println("No cached content.")
	}
	return nil
}
