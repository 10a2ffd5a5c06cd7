package log

import (
	"io"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Log struct singleton
type Log struct {
	AppName  string
	LogLevel int
	Logger   *logrus.Logger
}

var logger = NewLogger("marketplace-service", "ERROR", io.Discard)

var mapOfLogLevel = map[string]int{
	"DEBUG": 1,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 2,
}

// InitLogger initialize logger from Viper
func InitLogger(v *viper.Viper) {
	logger = NewLogger(v.GetString("app.name"), v.GetString("log.level"), nil)
}

// NewLogger builds a logger writing JSON lines to w (stdout when nil).
func NewLogger(appName, levelStr string, w io.Writer) Log {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	if w != nil {
		l.SetOutput(w)
	}
	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	logLevel, ok := mapOfLogLevel[strings.ToUpper(levelStr)]
	if !ok {
		logLevel = 1
	}
	return Log{
		AppName:  appName,
		LogLevel: logLevel,
		Logger:   l,
	}
}

// GetLogger return singleton
func GetLogger() Log {
	return logger
}

func (l Log) Info(context, message, scope, meta string) {
	if l.LogLevel <= 1 {
		_, file, line, _ := runtime.Caller(1)
		l.Logger.WithFields(logrus.Fields{
			"service": l.AppName,
			"context": context,
			"scope":   scope,
			"meta":    meta,
			"file":    file,
			"line":    line,
		}).Info(message)
	}
}

func (l Log) Warn(context, message, scope, meta string) {
	if l.LogLevel <= 2 {
		_, file, line, _ := runtime.Caller(1)
		l.Logger.WithFields(logrus.Fields{
			"service": l.AppName,
			"context": context,
			"scope":   scope,
			"meta":    meta,
			"file":    file,
			"line":    line,
		}).Warn(message)
	}
}

func (l Log) Error(context, message, scope, meta string) {
	if l.LogLevel <= 2 {
		_, file, line, _ := runtime.Caller(1)
		_, file2, line2, _ := runtime.Caller(2)
		l.Logger.WithFields(logrus.Fields{
			"service": l.AppName,
			"context": context,
			"scope":   scope,
			"meta":    meta,
			"file1":   file,
			"line1":   line,
			"file2":   file2,
			"line2":   line2,
		}).Error(message)
	}
}

// Slow reports calls exceeding their latency budget; the caller frame is two levels up.
func (l Log) Slow(context, message, scope, meta string) {
	if l.LogLevel <= 1 {
		_, file, line, _ := runtime.Caller(2)
		l.Logger.WithFields(logrus.Fields{
			"service": l.AppName,
			"context": context,
			"scope":   scope,
			"meta":    meta,
			"file":    file,
			"line":    line,
		}).Info("[SLOW] " + message)
	}
}
