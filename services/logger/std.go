package logsvc

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/trezcool/schoolms/core"
)

// StdLogger prints to a *log.Logger. Debug messages are dropped unless debug is set.
type StdLogger struct {
	std   *log.Logger
	debug bool
}

var _ core.Logger = (*StdLogger)(nil)

func NewStdLogger(w io.Writer, prefix string, debug bool) *StdLogger {
	if w == nil {
		w = os.Stderr
	}
	return &StdLogger{
		std:   log.New(w, prefix, log.LstdFlags|log.Lmicroseconds),
		debug: debug,
	}
}

func (l StdLogger) print(level, msg string, args []interface{}) {
	line := level + " " + msg
	for _, arg := range args {
		line += fmt.Sprintf(" | %+v", arg)
	}
	_ = l.std.Output(3, line)
}

func (l StdLogger) Debug(msg string, args ...interface{}) {
	if l.debug {
		l.print("DEBUG", msg, args)
	}
}

func (l StdLogger) Info(msg string, args ...interface{})  { l.print("INFO", msg, args) }
func (l StdLogger) Warn(msg string, args ...interface{})  { l.print("WARN", msg, args) }
func (l StdLogger) Error(msg string, args ...interface{}) { l.print("ERROR", msg, args) }

func (l StdLogger) Fatal(msg string, args ...interface{}) {
	l.print("FATAL", msg, args)
	os.Exit(1)
}
