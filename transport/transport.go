// Package transport provides the serial-port byte link used to talk to
// the programmer board.
//
// The wire protocol assumes reads that block until exactly the requested
// bytes are available. Serial ports do not work that way natively, so
// Port layers exact-length reads with a deadline on top of go.bug.st/serial:
// a read accumulates bytes until the request is satisfied, and a deadline
// that expires with bytes still missing surfaces as *TimeoutError rather
// than a silent short read.
package transport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// Port is a serial connection to the board. It implements
// protocol.Transport. Port is not safe for concurrent use; the protocol
// is strictly ping-pong and has a single caller.
type Port struct {
	port    serial.Port
	device  string
	timeout time.Duration
}

// TimeoutError indicates a read deadline expired before the link
// delivered the requested bytes.
type TimeoutError struct {
	Wanted  int
	Got     int
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("read timed out after %s (%d of %d bytes received)",
		e.Timeout, e.Got, e.Wanted)
}

// Open opens and configures the serial device. The timeout bounds each
// read call; a board that stays silent longer than that fails the
// session rather than hanging it.
//
// Example:
//
//	port, err := transport.Open("/dev/ttyUSB0", 115200, 10*time.Millisecond)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
func Open(device string, baudRate int, timeout time.Duration) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	p, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", device, err)
	}

	if err := p.SetReadTimeout(timeout); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("configure read timeout: %w", err)
	}

	return &Port{port: p, device: device, timeout: timeout}, nil
}

// Close releases the serial port.
func (p *Port) Close() error {
	return p.port.Close()
}

// Device returns the path the port was opened on.
func (p *Port) Device() string {
	return p.device
}

// ReadU8 reads one byte.
func (p *Port) ReadU8() (byte, error) {
	buf, err := p.ReadN(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadU16 reads a big-endian 16-bit value.
func (p *Port) ReadU16() (uint16, error) {
	buf, err := p.ReadN(2)
	if err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// ReadN reads exactly n bytes, accumulating partial reads until the
// request is satisfied or the deadline expires.
func (p *Port) ReadN(n int) ([]byte, error) {
	buf := make([]byte, n)
	got := 0

	for got < n {
		read, err := p.port.Read(buf[got:])
		if err != nil {
			return nil, fmt.Errorf("serial read: %w", err)
		}
		if read == 0 {
			// The serial layer reports an expired deadline as a
			// zero-length read with no error.
			return nil, &TimeoutError{Wanted: n, Got: got, Timeout: p.timeout}
		}
		got += read
	}

	return buf, nil
}

// WriteU8 writes one byte.
func (p *Port) WriteU8(v byte) error {
	return p.WriteN([]byte{v})
}

// WriteU16 writes a big-endian 16-bit value.
func (p *Port) WriteU16(v uint16) error {
	return p.WriteN([]byte{byte(v >> 8), byte(v)})
}

// WriteN writes all of b.
func (p *Port) WriteN(b []byte) error {
	for len(b) > 0 {
		n, err := p.port.Write(b)
		if err != nil {
			return fmt.Errorf("serial write: %w", err)
		}
		b = b[n:]
	}
	return nil
}
