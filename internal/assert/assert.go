// Package assert holds invariant checks for the unchecked fast paths. They
// compile to nothing unless the module is built with -tags memlinkdebug.
package assert

import "fmt"

// That panics with the formatted message when cond is false and debug
// assertions are enabled.
func That(cond bool, format string, args ...any) {
	if Enabled && !cond {
		panic(fmt.Sprintf("memlink: assertion failed: "+format, args...))
	}
}
