package session

import "io"

// StateKind identifies a session phase without its carried data.
type StateKind int

const (
	KindIdle StateKind = iota
	KindReading
	KindWriting
	KindVerifying
	KindFixing
	KindFinished
)

func (k StateKind) String() string {
	switch k {
	case KindIdle:
		return "Idle"
	case KindReading:
		return "Reading"
	case KindWriting:
		return "Writing"
	case KindVerifying:
		return "Verifying"
	case KindFixing:
		return "Fixing"
	case KindFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Mismatch is one byte address where verification data differed from the
// board's memory. Mismatches are recorded in arrival order, and that
// order defines the order corrections are sent while fixing.
type Mismatch struct {
	Address  uint16
	Expected byte
}

// State is the session's single mutable entity. Each transition consumes
// the old state value and produces a new one; the caller must not keep
// using a state it has passed to Transition.
//
// The set of implementations is closed: Idle, Reading, Writing,
// Verifying, Fixing and Finished.
type State interface {
	Kind() StateKind

	state()
}

// Idle waits for the board's Ready packet.
type Idle struct{}

// Reading receives the board's memory dump. The output handle is owned
// exclusively by this state and is closed on every exit from it.
type Reading struct {
	Progress int
	Total    int
	Out      io.WriteCloser
	OutPath  string
}

// Writing streams the payload to the board, one chunk per request.
type Writing struct {
	Cursor int
	Data   []byte
	Verify bool
}

// Verifying streams the payload for comparison and accumulates the
// mismatches the board reports.
type Verifying struct {
	Cursor     int
	Data       []byte
	Mismatches []Mismatch
	Fix        bool
}

// Fixing re-sends only the mismatched bytes, in arrival order.
type Fixing struct {
	Mismatches []Mismatch
	Cursor     int
}

// Finished is the terminal state. Err is nil on success. Once a session
// reaches Finished no further transitions are performed.
type Finished struct {
	Err error
}

func (Idle) Kind() StateKind      { return KindIdle }
func (Reading) Kind() StateKind   { return KindReading }
func (Writing) Kind() StateKind   { return KindWriting }
func (Verifying) Kind() StateKind { return KindVerifying }
func (Fixing) Kind() StateKind    { return KindFixing }
func (Finished) Kind() StateKind  { return KindFinished }

func (Idle) state()      {}
func (Reading) state()   {}
func (Writing) state()   {}
func (Verifying) state() {}
func (Fixing) state()    {}
func (Finished) state()  {}
