package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/futuresim/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage configuration files for backtest runs.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  futuresim config init -o simulation.yaml
  futuresim config validate -f simulation.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "simulation.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("Created default configuration: %s\n", configInitOutput)
	fmt.Println("\nEdit the file and run with:")
	fmt.Printf("  futuresim backtest -c %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("Configuration valid: %s\n", configValidatePath)
	fmt.Printf("  Symbol:   %s (%s)\n", cfg.Market.Symbol, cfg.Market.Dataset)
	fmt.Printf("  Account:  %.2f at %gx, %.1f bps\n",
		cfg.Account.InitialEquity, cfg.Account.Leverage, cfg.Account.FeeBps)
	fmt.Printf("  Strategy: %s\n", cfg.Strategy.Kind)
	fmt.Printf("  Journal:  %s\n", cfg.Journal.Type)
	return nil
}
