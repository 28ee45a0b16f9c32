// SPDX-License-Identifier: MPL-2.0

// Package issue provides structured, user-facing error reporting: a small
// catalog of known failure classes with fix suggestions, and the
// ActionableError type for wrapping errors with operation context.
package issue
