package main

import (
	"context"
	"fmt"
	"runtime/debug"
)

// CatchPanicToContext recovers a panic in the calling goroutine and cancels
// ctxCancel with it, stack attached.
func CatchPanicToContext(ctxCancel context.CancelCauseFunc) {
	if v := recover(); v != nil {
		err, ok := v.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", v)
		}
		err = fmt.Errorf("%w\n%v", err, string(debug.Stack()))
		if ctxCancel != nil {
			ctxCancel(err)
		}
	}
}
