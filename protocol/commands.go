package protocol

// WriteReadCommand sends the Read command: dump board memory from start
// to end (exclusive) back to the host.
//
// Wire format:
//
//	[0x00][START_H][START_L][END_H][END_L]
func WriteReadCommand(t Transport, start, end uint16) error {
	if err := t.WriteU8(CmdRead); err != nil {
		return err
	}
	if err := t.WriteU16(start); err != nil {
		return err
	}
	return t.WriteU16(end)
}

// WriteWriteCommand sends the Write command: the board will request
// chunks until the host signals the end of the stream. When verify is
// set the board stays in command mode for the verification pass that
// follows.
//
// Wire format:
//
//	[0x01][VERIFY]
func WriteWriteCommand(t Transport, verify bool) error {
	if err := t.WriteU8(CmdWrite); err != nil {
		return err
	}
	return t.WriteU8(flagByte(verify))
}

// WriteVerifyCommand sends the Verify command: the board will request
// chunks, compare them against its memory, and report each differing
// byte. When fix is set the board requests corrections afterwards.
//
// Wire format:
//
//	[0x02][FIX]
func WriteVerifyCommand(t Transport, fix bool) error {
	if err := t.WriteU8(CmdVerify); err != nil {
		return err
	}
	return t.WriteU8(flagByte(fix))
}

func flagByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
