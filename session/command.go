package session

// Command is the operator's chosen action, fixed for the whole session.
//
// The set of implementations is closed: Read, Write and Verify.
type Command interface {
	command()
}

// Read dumps board memory from Start to End (exclusive) into the file
// at OutPath. Requires Start <= End.
type Read struct {
	OutPath string
	Start   uint16
	End     uint16
}

// Write streams the payload at InPath to the board. When Verify is set
// the session flows into a verification pass (with fixing enabled) once
// the last chunk has been written.
type Write struct {
	InPath string
	Verify bool
}

// Verify streams the payload at InPath to the board for comparison
// against its memory. When Fix is set, mismatched bytes are re-sent
// after the comparison pass.
type Verify struct {
	InPath string
	Fix    bool
}

func (Read) command()   {}
func (Write) command()  {}
func (Verify) command() {}
