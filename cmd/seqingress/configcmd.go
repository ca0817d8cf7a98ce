// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"seqingress/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage seqingress configuration",
	Long: `Manage seqingress configuration.

Configuration is stored in:
  - Linux: ~/.config/seqingress/config.cue
  - macOS: ~/Library/Application Support/seqingress/config.cue
  - Windows: %AppData%\seqingress\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a starter configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigPath(cmd)
		},
	})

	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command) error {
	path, err := config.WriteDefaultConfig()
	if errors.Is(err, os.ErrExist) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration already exists at %s\n",
			WarningStyle.Render("!"), PathStyle.Render(path))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Created starter configuration at %s\n",
		SuccessStyle.Render("✓"), PathStyle.Render(path))
	return nil
}

func runConfigPath(cmd *cobra.Command) error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Config directory: %s\n", dir)
	fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", path)
	return nil
}
