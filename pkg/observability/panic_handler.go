package observability

import (
	"fmt"
	"runtime/debug"

	"github.com/platinummonkey/ktlint-report/pkg/log"
)

// RecoverPanicWithCallback recovers from a panic, logs it with its stack at error
// level and then runs callback. It must be deferred directly:
//
//	defer observability.RecoverPanicWithCallback(l, "GET /api/runs", func() {
//	    writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
//	})
//
// The panic is not re-raised.
func RecoverPanicWithCallback(l log.Log, context string, callback func()) {
	if r := recover(); r != nil {
		l.Error(fmt.Sprintf("[PANIC] %v (%s)\n%s", r, context, debug.Stack()))
		if callback != nil {
			callback()
		}
	}
}

// MustRecover converts a recovered panic value into an error, nil when r is nil.
// The stack is logged at debug level only.
//
//	defer func() {
//	    if err := observability.MustRecover(l, recover()); err != nil {
//	        result = fmt.Errorf("rule panicked on %s: %w", file, err)
//	    }
//	}()
func MustRecover(l log.Log, r any) error {
	if r == nil {
		return nil
	}
	if l.IsDebugEnabled() {
		l.Debug(fmt.Sprintf("[PANIC] %v\n%s", r, debug.Stack()))
	}
	return fmt.Errorf("panic: %v", r)
}
