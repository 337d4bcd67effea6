package protocol

import "testing"

func TestChecksum(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint16
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: 0x0000,
		},
		{
			name:     "single byte",
			data:     []byte{0x01},
			expected: 0x0101,
		},
		{
			name:     "ascending bytes",
			data:     []byte{0x01, 0x02, 0x03, 0x04},
			expected: 0x0A14, // sum1=0x0A, sum2=0x14
		},
		{
			name:     "all zeros",
			data:     []byte{0x00, 0x00, 0x00, 0x00},
			expected: 0x0000,
		},
		{
			name:     "wrapping accumulators",
			data:     []byte{0xFF, 0xFF, 0xFF},
			expected: 0xFDFA, // sum1 wraps to 0xFD, sum2 to 0xFA
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Checksum(tt.data)
			if result != tt.expected {
				t.Errorf("Checksum() = 0x%04X, want 0x%04X", result, tt.expected)
			}
		})
	}
}

func TestChecksumIsOrderSensitive(t *testing.T) {
	a := Checksum([]byte{0x01, 0x02, 0x03})
	b := Checksum([]byte{0x03, 0x02, 0x01})

	if a == b {
		t.Errorf("Checksum() = 0x%04X for both orderings, want different values", a)
	}
}

func TestChecksumIsDeterministic(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i * 7)
	}

	first := Checksum(data)
	for i := 0; i < 10; i++ {
		if got := Checksum(data); got != first {
			t.Fatalf("Checksum() = 0x%04X on run %d, want 0x%04X", got, i, first)
		}
	}
}

func BenchmarkChecksum(b *testing.B) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Checksum(data)
	}
}
