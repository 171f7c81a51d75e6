package serviceutil

import (
	"log/slog"
	"os"
)

// Fatal logs a message with its cause and exits the process.
func Fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
