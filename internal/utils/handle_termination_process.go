package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// TerminationContext возвращает контекст, который отменяется по SIGINT или SIGTERM.
func TerminationContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
