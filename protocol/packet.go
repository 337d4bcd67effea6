package protocol

// Packet is one decoded message from the board. Packets are immutable
// once decoded.
//
// The set of implementations is closed: Ready, Print, Chunk, ReadEnd,
// ChunkRequest, InvalidChecksum, ByteMismatch and ByteRequest.
type Packet interface {
	// String names the packet for diagnostics.
	String() string

	packet()
}

// Ready signals the board is idle and awaiting a command.
type Ready struct{}

// Print carries a log line from the board.
type Print struct {
	Text string
}

// Chunk carries a block of memory read from the board, with a checksum
// the board computed over Data.
type Chunk struct {
	Data     []byte
	Checksum uint16
}

// ReadEnd signals a read session is complete.
type ReadEnd struct{}

// ChunkRequest asks the host for the next chunk to write.
type ChunkRequest struct{}

// InvalidChecksum reports that a chunk the board received failed its
// checksum validation.
type InvalidChecksum struct {
	Expected uint16
	Computed uint16
}

// ByteMismatch reports one byte the board found to differ from the
// verification data.
type ByteMismatch struct {
	Address  uint16
	Expected byte
	Found    byte
}

// ByteRequest asks the host for the next mismatch to correct.
type ByteRequest struct{}

func (Ready) packet()           {}
func (Print) packet()           {}
func (Chunk) packet()           {}
func (ReadEnd) packet()         {}
func (ChunkRequest) packet()    {}
func (InvalidChecksum) packet() {}
func (ByteMismatch) packet()    {}
func (ByteRequest) packet()     {}

func (Ready) String() string           { return "Ready" }
func (Print) String() string           { return "Print" }
func (Chunk) String() string           { return "Chunk" }
func (ReadEnd) String() string         { return "ReadEnd" }
func (ChunkRequest) String() string    { return "ChunkRequest" }
func (InvalidChecksum) String() string { return "InvalidChecksum" }
func (ByteMismatch) String() string    { return "ByteMismatch" }
func (ByteRequest) String() string     { return "ByteRequest" }
