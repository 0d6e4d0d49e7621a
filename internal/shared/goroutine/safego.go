// Package goroutine provides utilities for running work with panic recovery.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

// SafeGo launches fn in a goroutine. A panic is logged with its stack instead of
// crashing the process.
func SafeGo(log logger.Interface, name string, fn func()) {
	go Run(log, name, fn)
}

// Run executes fn on the calling goroutine with the same panic recovery as SafeGo.
// Scheduled jobs use it so a panicking cycle never takes the scheduler down.
func Run(log logger.Interface, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("goroutine panicked",
				"goroutine", name,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}
