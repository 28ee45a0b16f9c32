// SPDX-License-Identifier: MPL-2.0

// Command conscript runs console scripts under the harness's launch modes
// from the command line, mainly as a debugging surface for the scripttest
// library.
package main

func main() {
	Execute()
}
