package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls the process-wide logrus logger.
type Config struct {
	Level      string // debug, info, warn, error (default info)
	File       string // optional log file; empty means stderr only
	MaxSizeMB  int    // rotate after this many MB (default 20)
	MaxBackups int    // rotated files to keep (default 5)
	MaxAgeDays int    // days to keep rotated files (default 14)
}

// Init configures the standard logrus logger. When a file is configured,
// output goes to both stderr and a size-rotated file.
func Init(cfg Config) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if cfg.File == "" {
		logrus.SetOutput(os.Stderr)
		return
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    orDefault(cfg.MaxSizeMB, 20),
		MaxBackups: orDefault(cfg.MaxBackups, 5),
		MaxAge:     orDefault(cfg.MaxAgeDays, 14),
		Compress:   true,
	}
	logrus.SetOutput(io.MultiWriter(os.Stderr, rotated))
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
