package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string `json:"level" koanf:"level"`             // debug, info, warn, error
	Format     string `json:"format" koanf:"format"`           // json, pretty
	Directory  string `json:"directory" koanf:"directory"`     // directory for log files
	Filename   string `json:"filename" koanf:"filename"`       // log file name, empty disables the file sink
	MaxSizeMB  int    `json:"max_size_mb" koanf:"max_size_mb"` // rotate after this many megabytes
	MaxBackups int    `json:"max_backups" koanf:"max_backups"` // rotated files retained
	Console    bool   `json:"console" koanf:"console"`         // also log to console
	Caller     bool   `json:"caller" koanf:"caller"`           // annotate events with file:line
}

// DefaultLogConfig returns sensible defaults
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level:      "info",
		Format:     "json",
		Directory:  "logs",
		Filename:   "bgg-harvester.log",
		MaxSizeMB:  10,
		MaxBackups: 5,
		Console:    true,
		Caller:     false,
	}
}

// SetupLogger configures the global logger
func SetupLogger(config *LogConfig) error {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer

	// Console output
	if config.Console {
		if config.Format == "pretty" {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        os.Stdout,
				TimeFormat: time.RFC3339,
				NoColor:    false,
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	// Size-rotated file output
	if config.Filename != "" {
		if err := os.MkdirAll(config.Directory, 0755); err != nil {
			return err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(config.Directory, config.Filename),
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
		})
	}

	if len(writers) > 0 {
		ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
		if config.Caller {
			ctx = ctx.Caller()
		}
		log.Logger = ctx.Logger()
	}

	log.Info().
		Str("level", config.Level).
		Str("format", config.Format).
		Str("directory", config.Directory).
		Str("filename", config.Filename).
		Bool("console", config.Console).
		Msg("Logger initialized")

	return nil
}

// GetLogger returns a contextual logger
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
