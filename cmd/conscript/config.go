// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"conscript/internal/config"
	"conscript/pkg/scripttest"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective conscript configuration",
	Long: `Show the effective conscript configuration.

Configuration is stored in:
  - Linux: ~/.config/conscript/conscript.toml
  - macOS: ~/Library/Application Support/conscript/conscript.toml
  - Windows: %APPDATA%\conscript\conscript.toml

Environment variables (` + config.EnvLaunchMode + `, ` + config.EnvHideRunResults + `)
override the file settings.`,
	RunE: showConfig,
}

// effectiveConfig mirrors Settings with TOML tags matching the config file
// keys, so the echoed document round-trips as a valid conscript.toml.
type effectiveConfig struct {
	ScriptLaunchMode string `toml:"script_launch_mode"`
	HideRunResults   bool   `toml:"hide_run_results"`
}

func showConfig(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	mode := settings.OptionMode
	if mode == "" {
		mode = settings.DefaultMode
	}
	if mode == "" {
		mode = string(scripttest.InProcess)
	}

	out := cmd.OutOrStdout()
	if settings.ConfigFile != "" {
		fmt.Fprintln(out, SubtitleStyle.Render("# config file: "+settings.ConfigFile))
	} else {
		fmt.Fprintln(out, SubtitleStyle.Render("# config file: (none found, showing defaults)"))
	}

	doc, err := toml.Marshal(effectiveConfig{
		ScriptLaunchMode: mode,
		HideRunResults:   settings.HideRunResults,
	})
	if err != nil {
		return fmt.Errorf("rendering configuration: %w", err)
	}
	fmt.Fprint(out, string(doc))
	return nil
}
