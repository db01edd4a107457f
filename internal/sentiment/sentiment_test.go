package sentiment

import (
	"io"
	"log/slog"
)

// discardLogger keeps adapter log output out of test results.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
