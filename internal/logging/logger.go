// Package logging builds the zerolog logger shared by every component.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Rorical/ezframe/internal/config"
	"github.com/Rorical/ezframe/internal/storage"
)

const appName = "ezframe"

// Init returns a console logger writing to out and installs it as the
// global zerolog logger.
func Init(cfg config.LogConfig, out io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    out != os.Stderr && out != os.Stdout,
	}
	logger := zerolog.New(output).With().Timestamp().Str("app", appName).Logger().Level(ParseLevel(cfg.Level))
	log.Logger = logger
	return logger
}

// InitFile is Init writing to cfg.File, or to ezframe.log in the data
// directory. The terminal UI uses it so log lines do not corrupt the screen.
func InitFile(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	path := cfg.File
	if path == "" {
		dir, err := storage.DataDir()
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		path = filepath.Join(dir, appName+".log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return Init(cfg, f), f, nil
}

// ParseLevel maps a config level name to a zerolog level. Unknown names
// select info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
