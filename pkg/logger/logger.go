package logger

import (
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log = logrus.New()

// Init configures the shared logger from environment variables.
// LOG_LEVEL sets the level (default info). If LOG_FILE is set, output is
// written there with rotation (LOG_MAX_SIZE_MB, LOG_MAX_BACKUPS) in
// addition to stdout.
func Init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if file := os.Getenv("LOG_FILE"); file != "" {
		maxSize := envInt("LOG_MAX_SIZE_MB", 50)
		maxBackups := envInt("LOG_MAX_BACKUPS", 5)
		rotator := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			Compress:   true,
		}
		log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	}
}

// L returns the shared logger.
func L() *logrus.Logger {
	return log
}

// WithField is a convenience passthrough to the shared logger.
func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}

// WithFields is a convenience passthrough to the shared logger.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
