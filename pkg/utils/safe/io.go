package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/kottos/pkg/utils/logging"
)

// Close closes c and logs a failure instead of returning it. A nil closer is ignored.
func Close(ctx context.Context, c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.From(ctx).Warn("failed to close", slog.Any("error", err))
	}
}

// Write writes data to w and logs a failure. Used after the HTTP status line is committed,
// where nothing useful can be done with the error.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Warn("failed to write response", slog.Any("error", err))
	}
}
