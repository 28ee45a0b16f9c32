// SPDX-License-Identifier: MPL-2.0

// Package config loads the harness configuration tiers that feed launch
// mode resolution: the global option (environment variables) and the config
// file default (conscript.toml). The per-test marker tier is supplied by
// the test itself and never passes through this package.
package config
