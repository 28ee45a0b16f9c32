// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"conscript/internal/issue"
	"conscript/internal/platform"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "conscript"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "conscript"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"

	// EnvLaunchMode is the environment variable carrying the global launch
	// mode option, the middle tier of mode resolution.
	EnvLaunchMode = "CONSCRIPT_LAUNCH_MODE"
	// EnvHideRunResults suppresses the per-run result echo when set truthy.
	EnvHideRunResults = "CONSCRIPT_HIDE_RUN_RESULTS"

	// KeyLaunchMode is the config file key for the default launch mode.
	KeyLaunchMode = "script_launch_mode"
	// KeyHideRunResults is the config file key for suppressing result echoes.
	KeyHideRunResults = "hide_run_results"
)

// Settings holds the resolved configuration tiers.
type Settings struct {
	// OptionMode is the global option tier; empty when unset.
	OptionMode string
	// DefaultMode is the config file tier; empty when unset or no file.
	DefaultMode string
	// HideRunResults suppresses the diagnostic result echo.
	HideRunResults bool
	// ConfigFile is the config file that was read, empty when none was found.
	ConfigFile string
}

// ConfigDir returns the conscript configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the configuration tiers. A missing config file is not an
// error; a malformed one is. Environment variables are read for the option
// tier regardless of whether a file exists.
func Load() (*Settings, error) {
	s := &Settings{}

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileExt)
	if configFileOverride != "" {
		v.SetConfigFile(configFileOverride)
	} else {
		v.AddConfigPath(".")
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(v.ConfigFileUsed()).
				WithSuggestion("Check the TOML syntax of the config file").
				Wrap(err).
				Build()
		}
	} else {
		s.ConfigFile = v.ConfigFileUsed()
		s.DefaultMode = v.GetString(KeyLaunchMode)
		s.HideRunResults = v.GetBool(KeyHideRunResults)
	}

	s.OptionMode = os.Getenv(EnvLaunchMode)
	if val := os.Getenv(EnvHideRunResults); val != "" {
		if hide, err := strconv.ParseBool(val); err == nil {
			s.HideRunResults = hide
		}
	}

	return s, nil
}
