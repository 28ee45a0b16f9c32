// SPDX-License-Identifier: MPL-2.0

package scripttest

import (
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// EntryPoint is a registered console-script main function. It runs with
	// the sandboxed process state installed: os.Args holds the argument
	// vector, stdio is rebound, and any requested env/cwd overrides are in
	// effect. Its return value is the script's exit code; it may instead
	// call Exit to request abnormal termination.
	EntryPoint func() int

	// LookupFunc resolves a command name to a registered entry point.
	// The command locator consults it before searching the filesystem.
	LookupFunc func(name string) (EntryPoint, bool)
)

// defaultRegistry holds entry points registered by the test suite, keyed by
// command name. The registry plays the role a packaging system's
// console-script table plays for installed programs.
var defaultRegistry = struct {
	mu sync.RWMutex
	m  map[string]EntryPoint
}{m: make(map[string]EntryPoint)}

// RegisterEntryPoint exposes main as an invocable command under name for
// in-process runs. Registering the same name again replaces the previous
// entry. Entry points are only consulted for plain command names; commands
// containing a path separator always take the filesystem route.
func RegisterEntryPoint(name string, main EntryPoint) {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	defaultRegistry.m[name] = main
}

// UnregisterEntryPoint removes a previously registered entry point.
func UnregisterEntryPoint(name string) {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	delete(defaultRegistry.m, name)
}

// LookupEntryPoint returns the entry point registered under name.
func LookupEntryPoint(name string) (EntryPoint, bool) {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	ep, ok := defaultRegistry.m[name]
	return ep, ok
}

// RegisteredEntryPoints returns the sorted names of all registered entry points.
func RegisteredEntryPoints() []string {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	names := maps.Keys(defaultRegistry.m)
	slices.Sort(names)
	return names
}
