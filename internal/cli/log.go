// Package cli implements the dragdrop command-line interface.
//
// This package provides commands for playing boards interactively, driving
// them from a line-oriented console or a script, validating and inspecting
// board files, and managing saved sessions. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - play: Full-screen board with mouse and keyboard input
//   - repl: Line-oriented console, friendly to screen readers
//   - simulate: Run a console script headless and print the result
//   - validate: Check board files, optionally watching for changes
//   - inspect: Draw chains and ownership as DOT or SVG
//   - saves: List and delete saved sessions
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Engine
// activity reaches the log through observability hooks installed at startup.
// Loggers are passed through context.Context.
//
// # Example
//
//	import "github.com/matzehuels/dragdrop/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dragdrop/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Validated board.toml (3ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability hooks
// =============================================================================

// logHooks writes engine activity to the debug log.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.BoardHooks       = logHooks{}
	_ observability.InteractionHooks = logHooks{}
	_ observability.StoreHooks       = logHooks{}
)

func installHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetBoardHooks(h)
	observability.SetInteractionHooks(h)
	observability.SetStoreHooks(h)
}

func (h logHooks) OnPlacement(kind, item, area string, changed bool) {
	h.logger.Debug("placement", "decision", kind, "item", item, "area", area, "changed", changed)
}

func (h logHooks) OnReject(item, area, reason string) {
	h.logger.Debug("rejected", "item", item, "area", area, "reason", reason)
}

func (h logHooks) OnShuffle(mode, item, target string) {
	h.logger.Debug("shuffle", "mode", mode, "item", item, "target", target)
}

func (h logHooks) OnReset(kind string, affected int) {
	h.logger.Debug("reset", "kind", kind, "affected", affected)
}

func (h logHooks) OnSessionStart(modality, item string) {
	h.logger.Debug("session start", "modality", modality, "item", item)
}

func (h logHooks) OnSessionEnd(modality, item, result string, d time.Duration) {
	h.logger.Debug("session end", "modality", modality, "item", item, "result", result, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnCompletionCancelled(item string) {
	h.logger.Debug("movement superseded", "item", item)
}

func (h logHooks) OnSave(_ context.Context, backend, name string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("save failed", "backend", backend, "name", name, "err", err)
		return
	}
	h.logger.Debug("saved", "backend", backend, "name", name, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnLoad(_ context.Context, backend, name string, found bool, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("load failed", "backend", backend, "name", name, "err", err)
		return
	}
	h.logger.Debug("loaded", "backend", backend, "name", name, "found", found, "took", d.Round(time.Microsecond))
}
