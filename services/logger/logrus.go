package logsvc

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/trezcool/schoolms/core"
)

// LogrusLogger emits structured entries. Error args go to the "error" field,
// map args are merged into the fields and anything else is listed under "args".
type LogrusLogger struct {
	l *logrus.Logger
}

var _ core.Logger = (*LogrusLogger)(nil)

func NewLogrusLogger(w io.Writer, conf *core.Config) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	if conf.Debug {
		l.SetLevel(logrus.DebugLevel)
	}
	if conf.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
	return &LogrusLogger{l: l}
}

func (l LogrusLogger) entry(args []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	var rest []interface{}
	for _, arg := range args {
		switch v := arg.(type) {
		case error:
			fields[logrus.ErrorKey] = v.Error()
		case map[string]interface{}:
			for k, val := range v {
				fields[k] = val
			}
		default:
			rest = append(rest, v)
		}
	}
	if len(rest) > 0 {
		fields["args"] = rest
	}
	return l.l.WithFields(fields)
}

func (l LogrusLogger) Debug(msg string, args ...interface{}) { l.entry(args).Debug(msg) }
func (l LogrusLogger) Info(msg string, args ...interface{})  { l.entry(args).Info(msg) }
func (l LogrusLogger) Warn(msg string, args ...interface{})  { l.entry(args).Warn(msg) }
func (l LogrusLogger) Error(msg string, args ...interface{}) { l.entry(args).Error(msg) }
func (l LogrusLogger) Fatal(msg string, args ...interface{}) { l.entry(args).Fatal(msg) }
