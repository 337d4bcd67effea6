package session

import (
	"fmt"
	"os"

	"github.com/eeprom-tools/at28ctl/protocol"
)

// Machine drives one session against the board. It holds the immutable
// session intent (the command) and the transport; the mutable session
// state is threaded through Transition by value.
type Machine struct {
	port protocol.Transport
	cmd  Command
	cfg  Config
}

// New creates a session Machine for the given transport and command.
func New(port protocol.Transport, cmd Command, opts ...Option) *Machine {
	if port == nil {
		panic("port cannot be nil")
	}
	if cmd == nil {
		panic("command cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Machine{
		port: port,
		cmd:  cmd,
		cfg:  cfg,
	}
}

// Transition consumes the current state and one decoded packet and
// produces the next state plus the effects to render. Outgoing protocol
// writes happen inside the transition.
//
// Transition is total: every failure, transport and file I/O included,
// collapses the session into Finished carrying the error. Once a
// Finished state is returned no further transitions may be performed.
func (m *Machine) Transition(st State, pkt Packet) (State, []Effect) {
	// Global rules, checked before any state-specific rule.
	switch p := pkt.(type) {
	case protocol.Ready:
		return m.dispatch(st)

	case protocol.Print:
		return st, []Effect{Print{Text: p.Text}}

	case protocol.InvalidChecksum:
		return m.fail(st, &ChecksumMismatchError{Expected: p.Expected, Computed: p.Computed})
	}

	switch s := st.(type) {
	case Reading:
		switch p := pkt.(type) {
		case protocol.Chunk:
			return m.readChunk(s, p)
		case protocol.ReadEnd:
			return m.finishRead(s)
		}

	case Writing:
		if _, ok := pkt.(protocol.ChunkRequest); ok {
			return m.writeChunk(s)
		}

	case Verifying:
		switch p := pkt.(type) {
		case protocol.ByteMismatch:
			return m.recordMismatch(s, p)
		case protocol.ChunkRequest:
			return m.verifyChunk(s)
		}

	case Fixing:
		if _, ok := pkt.(protocol.ByteRequest); ok {
			return m.fixByte(s)
		}
	}

	return m.fail(st, &UnexpectedPacketError{State: st.Kind(), Packet: pkt.String()})
}

// Packet is the decoded wire packet consumed by Transition.
type Packet = protocol.Packet

// dispatch restarts command dispatch. The board's Ready packet always
// does this regardless of the current state.
func (m *Machine) dispatch(st State) (State, []Effect) {
	// A restart abandons whatever the previous state held.
	releaseState(st)

	switch c := m.cmd.(type) {
	case Read:
		if c.End < c.Start {
			return Finished{Err: ErrInvalidRegionBounds}, nil
		}

		out, err := os.Create(c.OutPath)
		if err != nil {
			return Finished{Err: fmt.Errorf("create output file: %w", err)}, nil
		}

		if err := protocol.WriteReadCommand(m.port, c.Start, c.End); err != nil {
			_ = out.Close()
			return Finished{Err: err}, nil
		}

		return Reading{
			Progress: 0,
			Total:    int(c.End - c.Start),
			Out:      out,
			OutPath:  c.OutPath,
		}, []Effect{PrintLine{Text: "Initiating EEPROM read..."}}

	case Write:
		data, err := m.cfg.LoadSource(c.InPath)
		if err != nil {
			return Finished{Err: fmt.Errorf("read source file: %w", err)}, nil
		}

		if err := protocol.WriteWriteCommand(m.port, c.Verify); err != nil {
			return Finished{Err: err}, nil
		}

		return Writing{
			Cursor: 0,
			Data:   data,
			Verify: c.Verify,
		}, []Effect{PrintLine{Text: "Initiating EEPROM write..."}}

	case Verify:
		data, err := m.cfg.LoadSource(c.InPath)
		if err != nil {
			return Finished{Err: fmt.Errorf("read source file: %w", err)}, nil
		}

		if err := protocol.WriteVerifyCommand(m.port, c.Fix); err != nil {
			return Finished{Err: err}, nil
		}

		return Verifying{
			Cursor: 0,
			Data:   data,
			Fix:    c.Fix,
		}, []Effect{PrintLine{Text: "Initiating EEPROM verification..."}}

	default:
		return Finished{Err: fmt.Errorf("unknown command %T", m.cmd)}, nil
	}
}

// readChunk validates and persists one dumped chunk, then acknowledges
// it so the board sends the next one.
func (m *Machine) readChunk(s Reading, p protocol.Chunk) (State, []Effect) {
	computed := protocol.Checksum(p.Data)
	if p.Checksum != computed {
		return m.fail(s, &ChecksumMismatchError{Expected: p.Checksum, Computed: computed})
	}

	if _, err := s.Out.Write(p.Data); err != nil {
		return m.fail(s, fmt.Errorf("write output file: %w", err))
	}

	if err := m.port.WriteU8(protocol.AckChunk); err != nil {
		return m.fail(s, err)
	}

	s.Progress += len(p.Data)

	return s, []Effect{Progress{Done: s.Progress, Total: s.Total}}
}

// finishRead closes out a completed dump.
func (m *Machine) finishRead(s Reading) (State, []Effect) {
	if err := s.Out.Close(); err != nil {
		return Finished{Err: fmt.Errorf("close output file: %w", err)}, nil
	}

	return Finished{}, []Effect{
		ProgressEnd{},
		PrintLine{Text: fmt.Sprintf("Memory contents successfully dumped to %q.", s.OutPath)},
	}
}

// writeChunk sends the next payload chunk, or acknowledges the end of
// the stream once every byte has been sent.
func (m *Machine) writeChunk(s Writing) (State, []Effect) {
	if s.Cursor >= len(s.Data) {
		effects := []Effect{
			ProgressEnd{},
			PrintLine{Text: fmt.Sprintf("%d bytes successfully written to EEPROM.", len(s.Data))},
		}

		if err := m.port.WriteU8(protocol.AckStreamEnd); err != nil {
			return Finished{Err: err}, nil
		}

		if s.Verify {
			effects = append(effects, PrintLine{Text: "Verifying..."})
			return Verifying{
				Cursor: 0,
				Data:   s.Data,
				Fix:    true,
			}, effects
		}

		return Finished{}, effects
	}

	cursor, err := protocol.SendChunk(m.port, s.Data, s.Cursor)
	if err != nil {
		return Finished{Err: err}, nil
	}
	s.Cursor = cursor

	return s, []Effect{Progress{Done: s.Cursor, Total: len(s.Data)}}
}

// recordMismatch appends one reported mismatch. The progress effect
// carries the count from before the append; the displayed number trails
// by one on purpose.
func (m *Machine) recordMismatch(s Verifying, p protocol.ByteMismatch) (State, []Effect) {
	effects := []Effect{VerifyProgress{
		Done:       s.Cursor,
		Total:      len(s.Data),
		Mismatches: len(s.Mismatches),
	}}

	s.Mismatches = append(s.Mismatches, Mismatch{Address: p.Address, Expected: p.Expected})

	return s, effects
}

// verifyChunk sends the next comparison chunk, or closes out the pass
// once every byte has been sent.
func (m *Machine) verifyChunk(s Verifying) (State, []Effect) {
	if s.Cursor >= len(s.Data) {
		if err := m.port.WriteU8(protocol.AckStreamEnd); err != nil {
			return Finished{Err: err}, nil
		}

		effects := []Effect{ProgressEnd{}}

		if len(s.Mismatches) == 0 {
			effects = append(effects, PrintLine{Text: "No mismatches found."})
			return Finished{}, effects
		}

		effects = append(effects, PrintLine{Text: fmt.Sprintf("%d mismatches found.", len(s.Mismatches))})

		if s.Fix {
			return Fixing{Mismatches: s.Mismatches, Cursor: 0}, effects
		}
		return Finished{}, effects
	}

	cursor, err := protocol.SendChunk(m.port, s.Data, s.Cursor)
	if err != nil {
		return Finished{Err: err}, nil
	}
	s.Cursor = cursor

	return s, []Effect{VerifyProgress{
		Done:       s.Cursor,
		Total:      len(s.Data),
		Mismatches: len(s.Mismatches),
	}}
}

// fixByte sends the next correction, or the end sentinel once every
// mismatch has been corrected.
func (m *Machine) fixByte(s Fixing) (State, []Effect) {
	if s.Cursor >= len(s.Mismatches) {
		if err := m.port.WriteU16(protocol.FixEndSentinel); err != nil {
			return Finished{Err: err}, nil
		}

		return Finished{}, []Effect{
			ProgressEnd{},
			PrintLine{Text: "Mismatches fixed successfully."},
		}
	}

	mm := s.Mismatches[s.Cursor]
	if err := m.port.WriteU16(mm.Address); err != nil {
		return Finished{Err: err}, nil
	}
	if err := m.port.WriteU8(mm.Expected); err != nil {
		return Finished{Err: err}, nil
	}
	s.Cursor++

	return s, []Effect{Progress{Done: s.Cursor, Total: len(s.Mismatches)}}
}

// fail collapses the session, releasing whatever the abandoned state
// held open.
func (m *Machine) fail(st State, err error) (State, []Effect) {
	releaseState(st)
	return Finished{Err: err}, nil
}

// releaseState closes any resource owned by a state that is being
// abandoned. Only Reading owns one: the output file.
func releaseState(st State) {
	if r, ok := st.(Reading); ok && r.Out != nil {
		_ = r.Out.Close()
	}
}
