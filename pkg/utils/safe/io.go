package safe

import (
	"context"
	"errors"
	"io"
	"os"
	"syscall"

	"github.com/secmon-lab/safetydocs/pkg/utils/logging"
)

// Close closes c and logs a failure together with args. A nil closer and a
// file that is already closed are ignored.
func Close(ctx context.Context, c io.Closer, args ...any) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		logging.From(ctx).Error("failed to close", append(args, "error", err)...)
	}
}

// Write sends data to a response that has already started. A client hanging
// up mid-download is only a warning.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	n, err := w.Write(data)
	switch {
	case err == nil && n == len(data):
	case errors.Is(err, syscall.EPIPE), errors.Is(err, syscall.ECONNRESET):
		logging.From(ctx).Warn("client went away during write", "written", n, "size", len(data))
	default:
		logging.From(ctx).Error("failed to write", "written", n, "size", len(data), "error", err)
	}
}
