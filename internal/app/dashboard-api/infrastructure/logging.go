package infrastructure

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger configures the global zerolog logger from LOG_LEVEL, LOG_FORMAT and LOG_FILE.
func InitLogger(config *Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil || config.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = zerolog.New(logWriter(config)).With().Timestamp().Logger()
}

func logWriter(config *Config) io.Writer {
	var out io.Writer = os.Stderr
	if config.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	if config.LogFile == "" {
		return out
	}

	file := &lumberjack.Logger{
		Filename:   config.LogFile,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}

	return zerolog.MultiLevelWriter(out, file)
}
