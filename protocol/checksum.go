package protocol

// Checksum computes the 16-bit chunk checksum over data.
//
// Two 8-bit accumulators run left to right over the block:
//
//	sum1 += b        (wrapping)
//	sum2 += sum1     (wrapping)
//
// The result packs sum1 in the high byte and sum2 in the low byte, so
// sum1 is emitted first when the value is written big-endian. This is a
// simplified Fletcher checksum: it catches single-byte corruption and
// most transpositions, and both sides of the link must agree on the
// packing order.
func Checksum(data []byte) uint16 {
	var sum1, sum2 byte

	for _, b := range data {
		sum1 += b
		sum2 += sum1
	}

	return uint16(sum1)<<8 | uint16(sum2)
}
