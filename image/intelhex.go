package image

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
)

// Intel HEX record layout, in bytes after hex decoding:
// [COUNT(1)][ADDRESS(2)][TYPE(1)][DATA(COUNT)][CHECKSUM(1)]
const (
	recordOverhead = 5

	recordData = 0x00
	recordEOF  = 0x01
)

// parseIntelHex assembles the data records of an Intel HEX stream into
// a contiguous image starting at address zero.
func parseIntelHex(r io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	payload := make([]byte, 0, 1024)
	sawEOF := false

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if line == "" {
			continue
		}
		if sawEOF {
			return nil, fmt.Errorf("line %d: record after end-of-file record", lineNum)
		}

		record, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		switch record.kind {
		case recordData:
			end := int(record.address) + len(record.data)
			if end > len(payload) {
				payload = growImage(payload, end)
			}
			copy(payload[record.address:], record.data)

		case recordEOF:
			sawEOF = true

		default:
			return nil, fmt.Errorf("line %d: unsupported record type 0x%02X", lineNum, record.kind)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if !sawEOF {
		return nil, fmt.Errorf("missing end-of-file record")
	}

	return payload, nil
}

type hexRecord struct {
	address uint16
	kind    byte
	data    []byte
}

// parseRecord decodes and validates one ":LLAAAATTDD..CC" line.
func parseRecord(line string) (*hexRecord, error) {
	if line[0] != ':' {
		return nil, fmt.Errorf("record must start with ':'")
	}

	raw, err := hex.DecodeString(line[1:])
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}
	if len(raw) < recordOverhead {
		return nil, fmt.Errorf("record too short: got %d bytes, minimum is %d", len(raw), recordOverhead)
	}

	count := int(raw[0])
	if len(raw) != recordOverhead+count {
		return nil, fmt.Errorf("record length mismatch: got %d bytes, expected %d (count=%d)",
			len(raw), recordOverhead+count, count)
	}

	// The record checksum is the 2's complement of the sum of every
	// preceding byte, so the whole record sums to zero.
	var sum byte
	for _, b := range raw {
		sum += b
	}
	if sum != 0 {
		checksum := raw[len(raw)-1]
		return nil, fmt.Errorf("checksum mismatch: got 0x%02X, expected 0x%02X",
			checksum, checksum-sum)
	}

	record := &hexRecord{
		address: uint16(raw[1])<<8 | uint16(raw[2]),
		kind:    raw[3],
		data:    make([]byte, count),
	}
	copy(record.data, raw[4:4+count])

	return record, nil
}

// growImage extends the image to n bytes, filling the gap with the
// erased-cell value.
func growImage(payload []byte, n int) []byte {
	for len(payload) < n {
		payload = append(payload, ErasedByte)
	}
	return payload
}
