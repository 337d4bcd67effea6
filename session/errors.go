package session

import (
	"errors"
	"fmt"
)

// ErrInvalidRegionBounds indicates a read command whose end address is
// below its start address.
var ErrInvalidRegionBounds = errors.New("memory region bounds must be valid")

// ChecksumMismatchError indicates data corruption on a chunk: either a
// chunk received from the board failed the host's validation, or the
// board reported that a chunk it received failed its own.
type ChecksumMismatchError struct {
	Expected uint16
	Computed uint16
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch (expected = 0x%04X, computed = 0x%04X)",
		e.Expected, e.Computed)
}

// UnexpectedPacketError indicates protocol desynchronization: the board
// sent a packet the current session phase cannot handle.
type UnexpectedPacketError struct {
	State  StateKind
	Packet string
}

func (e *UnexpectedPacketError) Error() string {
	return fmt.Sprintf("received an unexpected packet (state: %s, packet: %s)",
		e.State, e.Packet)
}
