// Package protocol implements the AT28C programmer wire protocol.
//
// The board and the host exchange packets over a point-to-point serial
// link. Every packet starts with a one-byte opcode followed by the fields
// that opcode prescribes. There is no framing beyond the opcode: field
// sizes are fixed or length-prefixed, so a packet is parsed by reading
// exactly the bytes its opcode calls for.
//
// # Packet Set (board to host)
//
//	0x00 Ready            board is idle and awaiting a command
//	0x01 Print            u16 length + UTF-8 text (board log line)
//	0x02 Chunk            u8 length + u16 checksum + data
//	0x03 ReadEnd          read session complete
//	0x04 ChunkRequest     board wants the next chunk to write
//	0x05 InvalidChecksum  u16 expected + u16 computed
//	0x06 ByteMismatch     u16 address + u8 expected + u8 found
//	0x07 ByteRequest      board wants the next correction
//
// # Commands (host to board)
//
//	0x00 Read    u16 start + u16 end
//	0x01 Write   u8 verify flag
//	0x02 Verify  u8 fix flag
//
// # Decoding
//
// Use ReadPacket to decode one packet from a Transport:
//
//	pkt, err := protocol.ReadPacket(port)
//	switch p := pkt.(type) {
//	case protocol.Chunk:
//	    // p.Data, p.Checksum
//	case protocol.Ready:
//	    // ...
//	}
//
// Unknown opcodes fail with *InvalidOpcodeError; a Print payload that is
// not valid UTF-8 fails with *InvalidTextError. Transport failures
// propagate unchanged.
//
// # Checksum
//
// Chunks carry a 16-bit checksum computed by two wrapping 8-bit running
// sums (a simplified Fletcher checksum). Both sides pack the accumulators
// the same way, sum1 in the high byte, so sum1 travels first on the
// big-endian wire. See Checksum.
//
// # Transport
//
// The package does not open serial ports. Callers supply a Transport,
// whose reads block until exactly the requested bytes are available or
// fail. See the transport package for the serial implementation.
package protocol
