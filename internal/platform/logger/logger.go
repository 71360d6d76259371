// Package logger is the process-wide log dispatcher. A message is rendered
// once and forwarded to every sink whose severity threshold admits it; the
// three sinks (stderr console, rotating syslog-like file, registered
// callback) are filtered independently.
//
// Thresholds follow an update-then-publish discipline: setters are expected
// at start-up, concurrent readers may observe a slightly stale threshold but
// never a torn one. Writing to a sink is fire-and-forget; sink failures are
// never reported back to the caller.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"confstore/internal/platform/metrics"
)

// Level is a log message severity, ordered most to least severe. LevelNone
// disables a sink.
type Level int32

const (
	LevelNone Level = iota
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
)

// String returns the level name used in configuration and sink labels.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	default:
		return "none"
	}
}

// ParseLevel maps a configuration string to a Level. Unknown values parse as
// LevelNone.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "error":
		return LevelError
	case "warning", "warn":
		return LevelWarning
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelNone
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarning:
		return slog.LevelWarn
	case LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// Callback receives an already-rendered message. plugin distinguishes
// messages originating from a third-party extension from core messages.
type Callback func(plugin bool, level Level, msg string)

type fileSink struct {
	h slog.Handler
	w *lumberjack.Logger
}

var (
	stderrLevel atomic.Int32
	syslogLevel atomic.Int32
	callback    atomic.Pointer[Callback]

	console atomic.Pointer[slog.Handler]

	fileMu   sync.Mutex // guards open/close of the file sink
	file     atomic.Pointer[fileSink]
	filePath = "data/logs/confstore.log"
)

func init() {
	setConsoleWriter(os.Stderr)
}

// setConsoleWriter rebuilds the console handler; tests swap in a buffer.
func setConsoleWriter(w io.Writer) {
	var h slog.Handler = tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelDebug, // admission is decided by the dispatcher
		TimeFormat: time.RFC3339,
		NoColor:    true,
	})
	console.Store(&h)
}

// SetStderr sets the console sink threshold. LevelNone disables the sink.
func SetStderr(l Level) {
	stderrLevel.Store(int32(l))
}

// SetSyslogFile sets the path of the syslog-like rotating file. Takes effect
// the next time the sink is enabled.
func SetSyslogFile(path string) {
	fileMu.Lock()
	defer fileMu.Unlock()
	filePath = path
}

// SetSyslog sets the syslog-like sink threshold. Enabling the sink opens the
// rotating file on first use; LevelNone closes it again.
func SetSyslog(l Level) {
	fileMu.Lock()
	defer fileMu.Unlock()

	if l != LevelNone && file.Load() == nil {
		w := &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		file.Store(&fileSink{
			h: slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
			w: w,
		})
	} else if l == LevelNone {
		if fs := file.Swap(nil); fs != nil {
			_ = fs.w.Close()
		}
	}
	syslogLevel.Store(int32(l))
}

// SetCallback registers the callback sink; nil unregisters it. A registered
// callback receives every message regardless of the other thresholds.
func SetCallback(cb Callback) {
	if cb == nil {
		callback.Store(nil)
		return
	}
	callback.Store(&cb)
}

// Logf renders the message once and dispatches it to every admitting sink.
func Logf(l Level, format string, args ...any) {
	LogMsg(false, l, fmt.Sprintf(format, args...))
}

// LogMsg dispatches an already-rendered message. It is the primitive behind
// Logf and the entry point for messages originating from plugins.
func LogMsg(plugin bool, l Level, msg string) {
	if l == LevelNone {
		return
	}

	if admits(Level(stderrLevel.Load()), l) {
		if h := console.Load(); h != nil {
			emit(*h, l, msg)
			metrics.LogMessages.WithLabelValues("stderr", l.String()).Inc()
		}
	}
	if admits(Level(syslogLevel.Load()), l) {
		if fs := file.Load(); fs != nil {
			emit(fs.h, l, msg)
			metrics.LogMessages.WithLabelValues("syslog", l.String()).Inc()
		}
	}
	if cb := callback.Load(); cb != nil {
		(*cb)(plugin, l, msg)
		metrics.LogMessages.WithLabelValues("callback", l.String()).Inc()
	}
}

// admits reports whether a sink with the given threshold accepts a message
// severity: the message must be at least as severe as the threshold.
func admits(threshold, l Level) bool {
	return threshold != LevelNone && l <= threshold
}

func emit(h slog.Handler, l Level, msg string) {
	rec := slog.NewRecord(time.Now(), l.slog(), msg, 0)
	_ = h.Handle(context.Background(), rec)
}
