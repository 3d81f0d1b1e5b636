package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inkpanel/internal/adapters/driven/config/file"
)

var (
	configInitForce  bool
	configShowReveal bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults and INKPANEL_* environment
overrides are applied. Credentials are redacted unless --reveal is given.`,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")
	configShowCmd.Flags().BoolVar(&configShowReveal, "reveal", false, "show credentials")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return file.DefaultPath()
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path, err := resolvedConfigPath()
	if err != nil {
		return err
	}
	if err := file.WriteDefault(path, configInitForce); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	cmd.Printf("Wrote default configuration to %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := file.Marshal(cfg, !configShowReveal)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	cmd.Print(string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	path, err := resolvedConfigPath()
	if err != nil {
		return err
	}
	cmd.Println(path)
	return nil
}
