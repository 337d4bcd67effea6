package session

// Effect is one observable output emitted by a transition: something
// the user should see, decoupled from how it is rendered. Protocol
// writes to the board are not effects.
//
// The set of implementations is closed: Print, PrintLine, Progress,
// VerifyProgress and ProgressEnd.
type Effect interface {
	effect()
}

// Print displays text without a trailing newline (board log output).
type Print struct {
	Text string
}

// PrintLine displays one full line.
type PrintLine struct {
	Text string
}

// Progress reports transfer progress in bytes (or corrections, while
// fixing).
type Progress struct {
	Done  int
	Total int
}

// VerifyProgress reports verification progress. Mismatches is the count
// recorded before the packet that triggered this effect was applied, so
// the displayed number trails the stored list by one while mismatches
// are arriving.
type VerifyProgress struct {
	Done       int
	Total      int
	Mismatches int
}

// ProgressEnd closes out a progress display.
type ProgressEnd struct{}

func (Print) effect()          {}
func (PrintLine) effect()      {}
func (Progress) effect()       {}
func (VerifyProgress) effect() {}
func (ProgressEnd) effect()    {}

// EffectSink receives effects as a session emits them. Implementations
// should return quickly; the session blocks while the sink runs.
type EffectSink func(Effect)
