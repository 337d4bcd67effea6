package protocol

import "unicode/utf8"

// ReadPacket decodes one packet from the transport.
//
// It reads the opcode byte, then exactly the fields that opcode
// prescribes. Unknown opcodes fail with *InvalidOpcodeError and a Print
// payload that is not valid UTF-8 fails with *InvalidTextError; any
// transport failure propagates unchanged.
func ReadPacket(t Transport) (Packet, error) {
	opcode, err := t.ReadU8()
	if err != nil {
		return nil, err
	}

	switch opcode {
	case OpReady:
		return Ready{}, nil

	case OpPrint:
		length, err := t.ReadU16()
		if err != nil {
			return nil, err
		}
		payload, err := t.ReadN(int(length))
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(payload) {
			return nil, &InvalidTextError{Payload: payload}
		}
		return Print{Text: string(payload)}, nil

	case OpChunk:
		length, err := t.ReadU8()
		if err != nil {
			return nil, err
		}
		checksum, err := t.ReadU16()
		if err != nil {
			return nil, err
		}
		data, err := t.ReadN(int(length))
		if err != nil {
			return nil, err
		}
		return Chunk{Data: data, Checksum: checksum}, nil

	case OpReadEnd:
		return ReadEnd{}, nil

	case OpChunkRequest:
		return ChunkRequest{}, nil

	case OpInvalidChecksum:
		expected, err := t.ReadU16()
		if err != nil {
			return nil, err
		}
		computed, err := t.ReadU16()
		if err != nil {
			return nil, err
		}
		return InvalidChecksum{Expected: expected, Computed: computed}, nil

	case OpByteMismatch:
		address, err := t.ReadU16()
		if err != nil {
			return nil, err
		}
		expected, err := t.ReadU8()
		if err != nil {
			return nil, err
		}
		found, err := t.ReadU8()
		if err != nil {
			return nil, err
		}
		return ByteMismatch{Address: address, Expected: expected, Found: found}, nil

	case OpByteRequest:
		return ByteRequest{}, nil

	default:
		return nil, &InvalidOpcodeError{Opcode: opcode}
	}
}

// SendChunk writes the next chunk of data to the transport and returns
// the advanced cursor.
//
// The chunk is min(ChunkMaxSize, len(data)-cursor) bytes, framed as a
// one-byte length, the two-byte checksum over exactly those bytes, then
// the bytes themselves. The caller is responsible for not calling
// SendChunk once cursor has reached len(data); an empty payload never
// produces a chunk at all.
func SendChunk(t Transport, data []byte, cursor int) (int, error) {
	n := ChunkMaxSize
	if remaining := len(data) - cursor; remaining < n {
		n = remaining
	}
	chunk := data[cursor : cursor+n]

	if err := t.WriteU8(byte(n)); err != nil {
		return cursor, err
	}
	if err := t.WriteU16(Checksum(chunk)); err != nil {
		return cursor, err
	}
	if err := t.WriteN(chunk); err != nil {
		return cursor, err
	}

	return cursor + n, nil
}
