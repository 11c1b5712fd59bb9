package suite

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

const maxWaitDuration = 10 * time.Second

// Suite bundles what a game needs to run in a test: a logger, scripted input and captured output.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Output *bytes.Buffer
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return ctx, &Suite{
		T:      t,
		Logger: logger,
		Output: &bytes.Buffer{},
	}
}

// Input returns a reader that yields one line per entry, as a user typing at the prompt would.
func (that *Suite) Input(lines ...string) io.Reader {
	if len(lines) == 0 {
		return strings.NewReader("")
	}

	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}
