// Package image loads payload images for write and verify sessions.
//
// # Formats
//
// Two source formats are supported:
//
//   - Raw binary: the file's bytes are the payload, verbatim.
//   - Intel HEX: line-oriented hex records (":LLAAAATTDD..CC"). Data
//     records are assembled into a contiguous image starting at address
//     zero; addresses the file does not cover are filled with 0xFF, the
//     erased-EEPROM value.
//
// Detection is by content first, extension second: a file whose first
// byte is ':' parses as Intel HEX, as does anything named .hex or .ihex.
// Everything else is raw.
//
// # Usage
//
//	payload, err := image.Load("firmware.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Parse errors carry the line number of the offending record.
package image
