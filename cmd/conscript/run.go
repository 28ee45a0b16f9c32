// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"conscript/internal/config"
	"conscript/pkg/scripttest"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	runMode      string
	runCwd       string
	runEnvVars   []string
	runEnvFiles  []string
	runShell     bool
	runCheck     bool
	runStdinFile string
	runQuiet     bool

	runCmd = &cobra.Command{
		Use:   "run [flags] -- COMMAND [ARG...]",
		Short: "Run a console script under a launch mode",
		Long: `Run a console script under the in-process or subprocess launch mode
and report its exit code along with captured stdout and stderr.

With --mode both the command runs under both modes in turn; the exit
code of the last run becomes the process exit code.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScript,
	}
)

func init() {
	runCmd.Flags().StringVarP(&runMode, "mode", "m", "", "launch mode: inprocess, subprocess or both (default from config)")
	runCmd.Flags().StringVar(&runCwd, "cwd", "", "working directory for the script")
	runCmd.Flags().StringArrayVarP(&runEnvVars, "env", "e", nil, "environment variable override KEY=VALUE (repeatable)")
	runCmd.Flags().StringArrayVar(&runEnvFiles, "env-file", nil, "env file to load before --env overrides (repeatable, suffix '?' marks optional)")
	runCmd.Flags().BoolVar(&runShell, "shell", false, "treat COMMAND as a shell line and re-split it")
	runCmd.Flags().BoolVar(&runCheck, "check", false, "fail with an error when the script exits non-zero")
	runCmd.Flags().StringVar(&runStdinFile, "stdin-file", "", "file to feed to the script's stdin")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "suppress the run result echo")
}

func runScript(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	modes, err := scripttest.ResolveModes(runMode, settings.OptionMode, settings.DefaultMode)
	if err != nil {
		return withHint(cmd, err)
	}
	log.Debug("resolved launch modes", "modes", modes)

	opts, err := buildRunOptions(settings)
	if err != nil {
		return err
	}

	command := any(args)
	if runShell {
		command = strings.Join(args, " ")
		opts = append(opts, scripttest.WithShell())
	}

	var last *scripttest.RunResult
	for _, mode := range modes {
		runner, err := scripttest.New(mode, runCwd)
		if err != nil {
			return err
		}
		runner.PrintResult = !runQuiet && !settings.HideRunResults
		runner.EchoWriter = cmd.OutOrStdout()

		log.Debug("running console script", "mode", mode, "argv", args)
		result, err := runner.Run(command, opts...)
		if err != nil {
			var check *scripttest.CheckError
			if errors.As(err, &check) {
				return &ExitError{Code: check.Returncode, Err: err}
			}
			return withHint(cmd, err)
		}
		last = result
	}

	if last != nil && !last.Success() {
		return &ExitError{Code: last.Returncode}
	}
	return nil
}

// withHint prints the catalog guidance for a known failure class on stderr.
// The error itself still propagates for the normal error report.
func withHint(cmd *cobra.Command, err error) error {
	if i, ok := issueFor(err); ok {
		fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render("hint: ")+i.Render())
	}
	return err
}

// buildRunOptions translates the run command's flags into scripttest options.
// Environment handling merges the ambient environment with any --env-file and
// --env overrides, since a full replacement is rarely what a CLI caller wants.
func buildRunOptions(settings *config.Settings) ([]scripttest.RunOption, error) {
	var opts []scripttest.RunOption

	if runCwd != "" {
		opts = append(opts, scripttest.WithCwd(runCwd))
	}
	if runCheck {
		opts = append(opts, scripttest.WithCheck())
	}

	if len(runEnvVars) > 0 || len(runEnvFiles) > 0 {
		env := ambientEnv()
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determining working directory: %w", err)
		}
		for _, file := range runEnvFiles {
			if err := config.LoadEnvFile(env, file, cwd); err != nil {
				return nil, err
			}
		}
		for _, pair := range runEnvVars {
			key, value, ok := strings.Cut(pair, "=")
			if !ok || key == "" {
				return nil, fmt.Errorf("invalid --env value %q: expected KEY=VALUE", pair)
			}
			env[key] = value
		}
		opts = append(opts, scripttest.WithEnv(env))
	}

	if runStdinFile != "" {
		f, err := os.Open(runStdinFile)
		if err != nil {
			return nil, fmt.Errorf("opening stdin file: %w", err)
		}
		// Left open for the duration of the run; the process exits right after.
		opts = append(opts, scripttest.WithStdin(f))
	}

	return opts, nil
}

// ambientEnv returns the current process environment as a map.
func ambientEnv() map[string]string {
	env := make(map[string]string)
	for _, pair := range os.Environ() {
		if key, value, ok := strings.Cut(pair, "="); ok {
			env[key] = value
		}
	}
	return env
}
