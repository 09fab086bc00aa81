package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Rorical/ezframe/internal/storage"
)

// Config holds application configuration.
type Config struct {
	Decode  DecodeConfig
	Storage StorageConfig
	Log     LogConfig
}

// DecodeConfig describes how the external decode command is run.
type DecodeConfig struct {
	Command string
	Args    []string
	Timeout time.Duration
	Policy  string
}

// StorageConfig selects the preference store backend.
type StorageConfig struct {
	Driver string
	Path   string
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level string
	File  string
}

const envPrefix = "EZFRAME"

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("decode.command", "decode_frame")
	v.SetDefault("decode.args", []string{})
	v.SetDefault("decode.timeout", "0s")
	v.SetDefault("decode.policy", "last-completed")
	v.SetDefault("storage.driver", storage.DriverFile)
	v.SetDefault("storage.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads configuration from path, or from the default location when path
// is empty, then applies EZFRAME_* environment overrides. A missing file is
// not an error.
func Load(path string) (Config, error) {
	v := newViper()

	if path == "" {
		path = os.Getenv("EZFRAME_CONFIG")
	}
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func isNotFound(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	return os.IsNotExist(err)
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	_ = newViper().Unmarshal(&c)
	return c
}

// DefaultPath returns the config file location inside the data directory.
func DefaultPath() (string, error) {
	dir, err := storage.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Save writes cfg to path as TOML, creating the directory if needed.
func Save(cfg Config, path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("decode.command", cfg.Decode.Command)
	if len(cfg.Decode.Args) > 0 {
		v.Set("decode.args", cfg.Decode.Args)
	}
	v.Set("decode.timeout", cfg.Decode.Timeout.String())
	v.Set("decode.policy", cfg.Decode.Policy)
	v.Set("storage.driver", cfg.Storage.Driver)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
