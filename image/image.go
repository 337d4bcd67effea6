package image

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErasedByte fills address gaps when a hex image is assembled. 0xFF is
// the value of an erased EEPROM cell.
const ErasedByte = 0xFF

// Load reads a payload image from path, decoding Intel HEX files and
// passing raw binaries through verbatim.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	if isIntelHex(path, data) {
		payload, err := parseIntelHex(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
		return payload, nil
	}

	return data, nil
}

// isIntelHex detects hex images by content first, extension second.
func isIntelHex(path string, data []byte) bool {
	if len(data) > 0 && data[0] == ':' {
		return true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hex", ".ihex":
		return true
	}
	return false
}
