// internal/recovery/recovery.go
package recovery

import (
	"fmt"
	"os"
	"runtime/debug"
)

// report prints the panic value with a stack trace, runs the cleanup if
// any, and exits with code 1.
func report(r any, cleanup func()) {
	_, _ = fmt.Fprintf(os.Stderr, "FATAL: %v\n\nStack trace:\n%s\n", r, debug.Stack())
	if cleanup != nil {
		cleanup()
	}
	os.Exit(1)
}

// HandlePanic turns an escaped panic into an error report and a clean
// exit. Defer it at the top of main and of long-running goroutines.
func HandlePanic() {
	if r := recover(); r != nil {
		report(r, nil)
	}
}

// HandlePanicFunc is HandlePanic with a cleanup step, for call sites
// holding resources that must be released even on a crash, such as an
// open audio device:
//
//	defer recovery.HandlePanicFunc(func() {
//		_ = beeper.Close()
//	})
//	_ = beeper.Play(ctx, signal, timing)
func HandlePanicFunc(cleanup func()) {
	if r := recover(); r != nil {
		report(r, cleanup)
	}
}
