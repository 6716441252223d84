package utils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLogger  = newLogger(os.Stdout, logrus.InfoLevel)
	WarnLogger  = newLogger(os.Stdout, logrus.WarnLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)
)

// InitLoggers points the shared loggers at stdout and, when logFile is set, a rotating file.
func InitLoggers(logFile, level string) {
	var out io.Writer = os.Stdout
	var errOut io.Writer = os.Stderr
	if strings.TrimSpace(logFile) != "" {
		rotating := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    20,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotating)
		errOut = io.MultiWriter(os.Stderr, rotating)
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}

	InfoLogger = newLogger(out, lvl)
	WarnLogger = newLogger(out, lvl)
	ErrorLogger = newLogger(errOut, lvl)
}

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	return l
}

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	InfoLogger.WithFields(logrus.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).Info(message)
}
