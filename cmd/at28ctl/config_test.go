package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	defs, err := loadDefaults(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("loadDefaults() error = %v", err)
	}

	if defs.Port != defaultPort {
		t.Errorf("Port = %q, want %q", defs.Port, defaultPort)
	}
	if defs.BaudRate != defaultBaud {
		t.Errorf("BaudRate = %d, want %d", defs.BaudRate, defaultBaud)
	}
	if defs.Timeout != defaultTimeout {
		t.Errorf("Timeout = %s, want %s", defs.Timeout, defaultTimeout)
	}
}

func TestLoadDefaultsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "port = \"/dev/ttyACM3\"\ntimeout_ms = 250\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	defs, err := loadDefaults(path)
	if err != nil {
		t.Fatalf("loadDefaults() error = %v", err)
	}

	if defs.Port != "/dev/ttyACM3" {
		t.Errorf("Port = %q, want /dev/ttyACM3", defs.Port)
	}
	if defs.Timeout != 250*time.Millisecond {
		t.Errorf("Timeout = %s, want 250ms", defs.Timeout)
	}

	// Keys the file does not define keep their built-in defaults.
	if defs.BaudRate != defaultBaud {
		t.Errorf("BaudRate = %d, want %d", defs.BaudRate, defaultBaud)
	}
}

func TestLoadDefaultsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("port = \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadDefaults(path); err == nil {
		t.Error("loadDefaults() error = nil, want parse failure")
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in       string
		expected uint16
		wantErr  bool
	}{
		{in: "0x8000", expected: 0x8000},
		{in: "32768", expected: 0x8000},
		{in: "0", expected: 0},
		{in: "0x10000", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "start", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAddress(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseAddress(%q) error = nil, want failure", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAddress(%q) error = %v", tt.in, err)
			}
			if got != tt.expected {
				t.Errorf("parseAddress(%q) = 0x%04X, want 0x%04X", tt.in, got, tt.expected)
			}
		})
	}
}
