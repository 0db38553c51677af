package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/sommelier/internal/api"
	"github.com/jackzampolin/sommelier/internal/config"
	"github.com/jackzampolin/sommelier/internal/home"
)

var (
	initForce  bool
	showPrefix string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to the home directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		path := cfgFile
		if path == "" {
			path = h.ConfigPath()
		}
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings (secrets redacted)",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		_, cm, err := loadConfig(logger)
		if err != nil {
			return err
		}

		entries := config.SettingsWithPrefix(cm.Get(), showPrefix)
		if api.GetOutputFormat() != api.OutputFormatText {
			return api.Output(entries)
		}
		if used := cm.ConfigFileUsed(); used != "" {
			fmt.Printf("# %s\n", used)
		} else {
			fmt.Println("# defaults (no config file)")
		}
		for _, e := range entries {
			fmt.Printf("%-32s %v\n", e.Key, e.Value)
		}
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
	configShowCmd.Flags().StringVar(&showPrefix, "prefix", "", "Filter by key prefix (e.g., 'backend.')")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
