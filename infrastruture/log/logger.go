// Package log provides the prefixed, coloured loggers used across the app.
package log

import (
	"errors"
	"fmt"
	"io"

	"github.com/beka-birhanu/amazeing/config"
	"github.com/beka-birhanu/amazeing/service/i"
	"github.com/sirupsen/logrus"
)

var _ i.Logger = &Logger{}

var ErrNilWriter = errors.New("logger writer is nil")

// Logger writes entries tagged with a component name. The name is printed in
// color unless color is empty.
type Logger struct {
	entry  *logrus.Entry
	prefix string
}

// New creates a logger for the component prefix writing to w.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}

	base := logrus.New()
	base.SetOutput(w)
	base.SetFormatter(&logrus.TextFormatter{
		DisableColors:    color == "",
		ForceColors:      color != "",
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05",
		QuoteEmptyFields: true,
	})

	tag := fmt.Sprintf("[%s]", prefix)
	if color != "" {
		tag = color + tag + config.ColorReset
	}
	return &Logger{
		entry:  base.WithField("component", prefix),
		prefix: tag,
	}, nil
}

// SetDebug turns debug entries on or off.
func (l *Logger) SetDebug(on bool) {
	level := logrus.InfoLevel
	if on {
		level = logrus.DebugLevel
	}
	l.entry.Logger.SetLevel(level)
}

// WithFields returns a logger that adds fields to every entry.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	return &Logger{
		entry:  l.entry.WithFields(logrus.Fields(fields)),
		prefix: l.prefix,
	}
}

// Info implements i.Logger.
func (l *Logger) Info(msg string) {
	l.entry.Info(l.prefix + " " + msg)
}

// Warning implements i.Logger.
func (l *Logger) Warning(msg string) {
	l.entry.Warn(l.prefix + " " + msg)
}

// Error implements i.Logger.
func (l *Logger) Error(msg string) {
	l.entry.Error(l.prefix + " " + msg)
}

// Debug implements i.Logger.
func (l *Logger) Debug(msg string) {
	l.entry.Debug(l.prefix + " " + msg)
}
