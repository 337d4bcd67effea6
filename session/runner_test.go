package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/eeprom-tools/at28ctl/protocol"
)

// script builds the board's side of a session as raw wire bytes.
type script struct {
	bytes.Buffer
}

func (s *script) ready()        { s.WriteByte(protocol.OpReady) }
func (s *script) readEnd()      { s.WriteByte(protocol.OpReadEnd) }
func (s *script) chunkRequest() { s.WriteByte(protocol.OpChunkRequest) }
func (s *script) byteRequest()  { s.WriteByte(protocol.OpByteRequest) }

func (s *script) chunk(data []byte) {
	cks := protocol.Checksum(data)
	s.WriteByte(protocol.OpChunk)
	s.WriteByte(byte(len(data)))
	s.WriteByte(byte(cks >> 8))
	s.WriteByte(byte(cks))
	s.Write(data)
}

func (s *script) corruptChunk(data []byte) {
	cks := protocol.Checksum(data) ^ 0x0101
	s.WriteByte(protocol.OpChunk)
	s.WriteByte(byte(len(data)))
	s.WriteByte(byte(cks >> 8))
	s.WriteByte(byte(cks))
	s.Write(data)
}

func (s *script) byteMismatch(address uint16, expected, found byte) {
	s.WriteByte(protocol.OpByteMismatch)
	s.WriteByte(byte(address >> 8))
	s.WriteByte(byte(address))
	s.WriteByte(expected)
	s.WriteByte(found)
}

func TestRunReadSession(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "dump.bin")

	var sc script
	sc.ready()
	sc.chunk([]byte{1, 2, 3, 4})
	sc.readEnd()

	var effects []Effect
	port := newScriptPort(sc.Bytes())
	m := New(port, Read{OutPath: outPath, Start: 0, End: 4},
		WithEffectSink(func(e Effect) { effects = append(effects, e) }))

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	dumped, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}
	if !bytes.Equal(dumped, []byte{1, 2, 3, 4}) {
		t.Errorf("output file = % X, want 01 02 03 04", dumped)
	}

	// Command, one chunk ack, nothing else.
	wantWire := []byte{0x00, 0x00, 0x00, 0x00, 0x04, protocol.AckChunk}
	if !bytes.Equal(port.out.Bytes(), wantWire) {
		t.Errorf("host wire = % X, want % X", port.out.Bytes(), wantWire)
	}

	var sawProgress bool
	for _, e := range effects {
		if p, ok := e.(Progress); ok {
			sawProgress = true
			if p.Done != 4 || p.Total != 4 {
				t.Errorf("Progress = %+v, want {4 4}", p)
			}
		}
	}
	if !sawProgress {
		t.Error("no Progress effect emitted")
	}
}

func TestRunReadSessionCorruptChunk(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "dump.bin")

	var sc script
	sc.ready()
	sc.corruptChunk([]byte{1, 2, 3, 4})

	m := New(newScriptPort(sc.Bytes()), Read{OutPath: outPath, Start: 0, End: 4})

	err := m.Run(context.Background())

	var cksErr *ChecksumMismatchError
	if !errors.As(err, &cksErr) {
		t.Fatalf("Run() error = %v, want *ChecksumMismatchError", err)
	}

	// The corrupted chunk must not have reached the file.
	dumped, readErr := os.ReadFile(outPath)
	if readErr != nil {
		t.Fatalf("read output file: %v", readErr)
	}
	if len(dumped) != 0 {
		t.Errorf("output file = % X, want empty", dumped)
	}
}

func TestRunWriteSession(t *testing.T) {
	payload := make([]byte, 20)
	for i := range payload {
		payload[i] = byte(i + 1)
	}

	var sc script
	sc.ready()
	sc.chunkRequest() // 16 bytes
	sc.chunkRequest() // remaining 4 bytes
	sc.chunkRequest() // terminal: stream-end ack

	port := newScriptPort(sc.Bytes())
	m := New(port, Write{InPath: "payload.bin"}, WithSourceLoader(staticSource(payload)))

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wire := port.out.Bytes()

	// Command bytes, then 16-byte chunk, then 4-byte chunk, then the ack.
	if !bytes.Equal(wire[:2], []byte{0x01, 0x00}) {
		t.Errorf("command wire = % X, want 01 00", wire[:2])
	}
	first := wire[2:]
	if first[0] != 16 {
		t.Fatalf("first chunk length = %d, want 16", first[0])
	}
	second := first[3+16:]
	if second[0] != 4 {
		t.Fatalf("second chunk length = %d, want 4", second[0])
	}
	tail := second[3+4:]
	if !bytes.Equal(tail, []byte{protocol.AckStreamEnd}) {
		t.Errorf("trailing wire = % X, want stream-end ack", tail)
	}

	var rebuilt []byte
	rebuilt = append(rebuilt, first[3:3+16]...)
	rebuilt = append(rebuilt, second[3:3+4]...)
	if !bytes.Equal(rebuilt, payload) {
		t.Error("chunks on the wire do not reassemble the payload")
	}
}

func TestRunWriteVerifyFixSession(t *testing.T) {
	payload := []byte{0x10, 0x20, 0x30, 0x40}

	var sc script
	sc.ready()
	sc.chunkRequest() // write: all 4 bytes
	sc.chunkRequest() // write terminal: flows into verifying with fix
	sc.chunkRequest() // verify: all 4 bytes
	sc.byteMismatch(0x0002, 0x30, 0x7F)
	sc.chunkRequest() // verify terminal: flows into fixing
	sc.byteRequest()  // correction for 0x0002
	sc.byteRequest()  // sentinel

	var effects []Effect
	port := newScriptPort(sc.Bytes())
	m := New(port, Write{InPath: "payload.bin", Verify: true},
		WithSourceLoader(staticSource(payload)),
		WithEffectSink(func(e Effect) { effects = append(effects, e) }))

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wire := port.out.Bytes()
	if !bytes.Equal(wire[len(wire)-2:], []byte{0xFF, 0xFF}) {
		t.Errorf("wire does not end with the fix sentinel: % X", wire[len(wire)-6:])
	}

	// The single correction precedes the sentinel: address then byte.
	correction := wire[len(wire)-5 : len(wire)-2]
	if !bytes.Equal(correction, []byte{0x00, 0x02, 0x30}) {
		t.Errorf("correction wire = % X, want 00 02 30", correction)
	}

	last, ok := effects[len(effects)-1].(PrintLine)
	if !ok || last.Text != "Mismatches fixed successfully." {
		t.Errorf("final effect = %#v", effects[len(effects)-1])
	}
}

func TestRunSurfacesInvalidBounds(t *testing.T) {
	var sc script
	sc.ready()

	m := New(newScriptPort(sc.Bytes()), Read{OutPath: "dump.bin", Start: 4, End: 0})

	if err := m.Run(context.Background()); !errors.Is(err, ErrInvalidRegionBounds) {
		t.Errorf("Run() error = %v, want ErrInvalidRegionBounds", err)
	}
}

func TestRunSurfacesDecodeFailure(t *testing.T) {
	m := New(newScriptPort([]byte{0x42}), Write{InPath: "payload.bin"},
		WithSourceLoader(staticSource(nil)))

	err := m.Run(context.Background())

	var opErr *protocol.InvalidOpcodeError
	if !errors.As(err, &opErr) {
		t.Fatalf("Run() error = %v, want *InvalidOpcodeError", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := New(newScriptPort(nil), Write{InPath: "payload.bin"},
		WithSourceLoader(staticSource(nil)))

	if err := m.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
