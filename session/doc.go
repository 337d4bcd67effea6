// Package session drives one complete programmer session from Idle to
// Finished.
//
// # Overview
//
// A session is a strict request/response exchange: the board always
// sends the next packet, and the host decodes it, transitions its state,
// and may write bytes back before waiting again. The package models this
// as a state machine whose single transition function consumes the
// current State and one decoded packet and produces the next State plus
// a list of Effects, the observable outputs (messages and progress
// updates) that the caller renders however it likes.
//
// # Basic Usage
//
//	port, err := transport.Open("/dev/ttyUSB0", 115200, 10*time.Millisecond)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	m := session.New(port, session.Read{OutPath: "dump.bin", Start: 0, End: 0x8000},
//	    session.WithEffectSink(renderEffect),
//	)
//	if err := m.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// # States
//
// Idle waits for the board's Ready packet. Ready dispatches the session
// command and moves to Reading, Writing or Verifying. A Write session
// that requested verification flows into Verifying when the last chunk
// has been sent; a Verifying session that found mismatches and requested
// fixing flows into Fixing. Finished is terminal and absorbing; it
// carries the session outcome.
//
// # Effects
//
// Transitions never print or draw. They emit Effect values (Print,
// PrintLine, Progress, VerifyProgress, ProgressEnd) which Run hands to
// the configured sink. Protocol-level writes to the board are not
// effects; they happen inside the transition.
//
// # Error Handling
//
// Every failure is terminal and collapses the session into a Finished
// state carrying the error; there is no retry anywhere in the engine.
// The error types are:
//   - *ChecksumMismatchError: a chunk arrived corrupted, or the board
//     rejected one the host sent
//   - *UnexpectedPacketError: the board sent a packet the current phase
//     cannot handle (protocol desynchronization)
//   - ErrInvalidRegionBounds: a read command with end < start
//   - protocol and file errors pass through wrapped
//
// # Logging
//
// Integrate with any logging framework via the Logger interface:
//
//	m := session.New(port, cmd, session.WithLogger(myLogger))
package session
