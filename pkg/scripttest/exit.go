// SPDX-License-Identifier: MPL-2.0

package scripttest

import "fmt"

// exitSignal is the panic payload carrying an entry point's explicit
// termination request. It is caught at the in-process executor boundary and
// translated into a return code; it never escapes a Run call.
type exitSignal struct {
	code any
}

func (s *exitSignal) String() string {
	return fmt.Sprintf("script exit: %v", s.code)
}

// Exit requests immediate termination of the running script, the in-process
// analog of a process calling os.Exit. The code may be:
//   - nil: success, return code 0
//   - an int: the return code
//   - anything else: its string form is written to the script's stderr
//     followed by a newline, and the return code is 1
//
// Exit panics with a private signal value, so it must only be called from
// inside a registered entry point while it is being run by a ScriptRunner.
func Exit(code any) {
	panic(&exitSignal{code: code})
}
