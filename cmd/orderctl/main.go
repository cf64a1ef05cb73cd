package main

import (
	"os"

	"github.com/Renal37/orderdesk/internal/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}
