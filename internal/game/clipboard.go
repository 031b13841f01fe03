package game

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
)

// copyFunc writes text to the system clipboard.
type copyFunc func(text string) error

// copyReport puts the session report on the clipboard and reports whether it
// got there. Failures are logged.
func copyReport(write copyFunc, report string, logger *log.Logger) bool {
	if write == nil {
		write = clipboard.WriteAll
	}
	if err := write(report); err != nil {
		logger.Warn("Failed to copy report to clipboard", "error", err)
		return false
	}
	logger.Info("session report copied to clipboard", "bytes", len(report))
	return true
}
