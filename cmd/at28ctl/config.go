package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Built-in connection defaults, used when neither the config file nor a
// flag says otherwise.
const (
	defaultPort    = "/dev/ttyUSB0"
	defaultBaud    = 115200
	defaultTimeout = 10 * time.Millisecond
)

// defaults are the connection settings offered as flag defaults.
type defaults struct {
	Port     string
	BaudRate int
	Timeout  time.Duration
}

// config.toml key mapping to connection settings.
type fileConfig struct {
	Port      string `toml:"port"`
	BaudRate  int    `toml:"baud_rate"`
	TimeoutMS int    `toml:"timeout_ms"`
}

// configPath resolves the config file location: the AT28CTL_CONFIG
// environment variable wins, otherwise the per-user config directory.
func configPath() string {
	if path := os.Getenv("AT28CTL_CONFIG"); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "at28ctl", "config.toml")
}

// loadDefaults overlays the optional config file onto the built-in
// defaults. A missing file is not an error; a malformed one is.
func loadDefaults(path string) (defaults, error) {
	defs := defaults{
		Port:     defaultPort,
		BaudRate: defaultBaud,
		Timeout:  defaultTimeout,
	}

	if path == "" {
		return defs, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if os.IsNotExist(err) {
			return defs, nil
		}
		return defaults{}, fmt.Errorf("load config %s: %w", path, err)
	}

	if meta.IsDefined("port") {
		defs.Port = raw.Port
	}
	if meta.IsDefined("baud_rate") {
		defs.BaudRate = raw.BaudRate
	}
	if meta.IsDefined("timeout_ms") {
		defs.Timeout = time.Duration(raw.TimeoutMS) * time.Millisecond
	}

	return defs, nil
}
