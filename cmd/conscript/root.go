// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"conscript/internal/config"
	"conscript/internal/issue"
	"conscript/pkg/scripttest"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "conscript",
		Short: "Run console scripts the way the test harness does",
		Long: TitleStyle.Render("conscript") + SubtitleStyle.Render(" - Run console scripts the way the test harness does") + `

conscript executes console scripts under the same launch modes the
scripttest library offers: in-process (shell scripts interpreted by
mvdan/sh inside this process) or subprocess (spawned via os/exec).
Both modes capture stdout and stderr separately and report a uniform
exit code.

` + SubtitleStyle.Render("Examples:") + `
  conscript run -- greet hello world       Run 'greet hello world' in-process
  conscript run --mode subprocess -- ls    Spawn 'ls' as a subprocess
  conscript run --mode both -- mytool      Run under both modes in turn
  conscript config                         Show the effective configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/conscript/conscript.toml)")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFileOverride(cfgFile)
	}

	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	// Config loading errors are surfaced but never fatal; the run command
	// still works with defaults.
	if _, err := config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain. Errors belonging to a known
// failure class get the catalog's suggestions appended.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	msg := err.Error()
	if i, ok := issueFor(err); ok {
		msg += "\n\n" + i.Render()
	}
	return msg
}

// issueFor maps the engine's error sentinels to their catalog entries.
func issueFor(err error) (*issue.Issue, bool) {
	switch {
	case errors.Is(err, scripttest.ErrScriptNotFound):
		return issue.Lookup(issue.ScriptNotFoundId)
	case errors.Is(err, scripttest.ErrInvalidMode):
		return issue.Lookup(issue.InvalidLaunchModeId)
	case errors.Is(err, scripttest.ErrCheckFailed):
		return issue.Lookup(issue.CheckFailedId)
	case errors.Is(err, scripttest.ErrSandboxRestore):
		return issue.Lookup(issue.SandboxRestoreFailedId)
	default:
		return nil, false
	}
}
