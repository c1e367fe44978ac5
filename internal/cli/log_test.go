package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("board loaded") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("placement") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("placement") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Validated fruit.toml")

	if !strings.Contains(buf.String(), "Validated fruit.toml (") {
		t.Errorf("output %q should contain message and elapsed time", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext should fall back to the default logger")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestLogHooks(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		call  func(logHooks)
		want  string
	}{
		{
			name:  "PlacementAtDebug",
			level: log.DebugLevel,
			call:  func(h logHooks) { h.OnPlacement("place", "apple", "basket", true) },
			want:  "area=basket",
		},
		{
			name:  "PlacementHiddenAtInfo",
			level: log.InfoLevel,
			call:  func(h logHooks) { h.OnPlacement("place", "apple", "basket", true) },
		},
		{
			name:  "SessionEnd",
			level: log.DebugLevel,
			call:  func(h logHooks) { h.OnSessionEnd("pointer", "apple", "drop", 12*time.Millisecond) },
			want:  "result=drop",
		},
		{
			name:  "SaveFailureWarnsAtInfo",
			level: log.InfoLevel,
			call: func(h logHooks) {
				h.OnSave(context.Background(), "sqlite", "monday", time.Millisecond, stderrors.New("disk full"))
			},
			want: "disk full",
		},
		{
			name:  "LoadMiss",
			level: log.DebugLevel,
			call: func(h logHooks) {
				h.OnLoad(context.Background(), "file", "monday", false, time.Millisecond, nil)
			},
			want: "found=false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.call(logHooks{logger: newLogger(&buf, tt.level)})

			if tt.want == "" {
				if buf.Len() != 0 {
					t.Errorf("unexpected output %q", buf.String())
				}
				return
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q should contain %q", buf.String(), tt.want)
			}
		})
	}
}
