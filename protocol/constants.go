package protocol

// Board-to-host packet opcodes.
const (
	// OpReady signals the board is idle and awaiting a command
	OpReady = 0x00

	// OpPrint carries a log line from the board (u16 length + UTF-8 text)
	OpPrint = 0x01

	// OpChunk carries a block of memory read from the board (u8 length + u16 checksum + data)
	OpChunk = 0x02

	// OpReadEnd signals a read session is complete
	OpReadEnd = 0x03

	// OpChunkRequest asks the host for the next chunk to write
	OpChunkRequest = 0x04

	// OpInvalidChecksum reports that a chunk the board received failed validation
	OpInvalidChecksum = 0x05

	// OpByteMismatch reports one byte that differs from the verification data
	OpByteMismatch = 0x06

	// OpByteRequest asks the host for the next mismatch to correct
	OpByteRequest = 0x07
)

// Host-to-board command opcodes.
const (
	// CmdRead starts a memory dump (u16 start + u16 end follow)
	CmdRead = 0x00

	// CmdWrite starts a memory write (u8 verify flag follows)
	CmdWrite = 0x01

	// CmdVerify starts a verification pass (u8 fix flag follows)
	CmdVerify = 0x02
)

// Host acknowledgement bytes used during chunk transfer.
const (
	// AckChunk acknowledges a received chunk during a read session
	AckChunk = 0xFF

	// AckStreamEnd acknowledges the end of a chunk stream
	AckStreamEnd = 0x00

	// FixEndSentinel terminates the correction stream during fixing
	FixEndSentinel = 0xFFFF
)

// ChunkMaxSize is the largest data block carried by a single chunk.
const ChunkMaxSize = 16
