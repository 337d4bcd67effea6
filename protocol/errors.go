package protocol

import "fmt"

// InvalidOpcodeError indicates the board sent a packet with an opcode
// outside the protocol's opcode table.
type InvalidOpcodeError struct {
	Opcode byte
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("received a packet with invalid opcode: 0x%02X", e.Opcode)
}

// InvalidTextError indicates a Print packet's payload is not valid UTF-8.
type InvalidTextError struct {
	Payload []byte
}

func (e *InvalidTextError) Error() string {
	return "a received string packet does not contain valid UTF-8"
}
