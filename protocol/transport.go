package protocol

// Transport is the byte link between the host and the board.
//
// Reads block until exactly the requested number of bytes is available
// or the link fails; there are no short reads. Multi-byte values are
// big-endian on the wire.
//
// The link is synchronous, ordered, and reliable within one physical
// connection. Implementations are free to enforce a read deadline as
// long as expiry surfaces as an error.
type Transport interface {
	ReadU8() (byte, error)
	ReadU16() (uint16, error)
	ReadN(n int) ([]byte, error)

	WriteU8(v byte) error
	WriteU16(v uint16) error
	WriteN(p []byte) error
}
