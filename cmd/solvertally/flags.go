package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/solvertally/internal/config"
)

// getVerboseFlag retrieves the verbose flag from the command or its root.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// loadConfig builds a Config from the defaults and, when one is found, the
// configuration file. A --config path that does not exist is an error; a
// missing default file is not.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	if cmd.Flags().Lookup("config") != nil {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return nil, err
		}
		cfg.ConfigFilePath = path
	}

	found := config.FindConfigFile(cfg.ConfigFilePath)
	if found == "" {
		if cfg.ConfigFilePath != "" {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return cfg, nil
	}

	file, err := config.LoadConfigFile(found)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
	}
	file.Apply(cfg)

	return cfg, nil
}

// applyOutputFlags overrides the snapshot and history locations with the
// flags the user set explicitly.
func applyOutputFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("output-dir") {
		dir, err := flags.GetString("output-dir")
		if err != nil {
			return err
		}
		cfg.OutputDir = dir
	}

	if flags.Changed("db-dir") {
		dir, err := flags.GetString("db-dir")
		if err != nil {
			return err
		}
		cfg.DBDir = dir
	}

	return nil
}

// addOutputFlags registers the flags read by applyOutputFlags.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output-dir", "o", ".",
		"Directory holding the snapshot files")
	cmd.Flags().String("db-dir", "",
		"Directory of the run history database (default: XDG data directory)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .solvertally in current or home directory)")
}
