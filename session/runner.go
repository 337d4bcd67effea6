package session

import (
	"context"
	"fmt"

	"github.com/eeprom-tools/at28ctl/protocol"
)

// Run drives the session to completion: decode one packet, transition,
// dispatch effects, repeat until the state becomes Finished. The
// returned error is the session outcome (nil on success).
//
// The context is checked at every packet boundary, so cancellation
// takes effect before the next blocking read. On every exit path,
// cancellation and decode failures included, any output file the
// session still holds open is closed.
func (m *Machine) Run(ctx context.Context) error {
	var st State = Idle{}
	defer func() { releaseState(st) }()

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("session cancelled: %w", err)
		}

		pkt, err := protocol.ReadPacket(m.port)
		if err != nil {
			return err
		}

		m.logDebug("packet received", "packet", pkt.String(), "state", st.Kind().String())

		next, effects := m.Transition(st, pkt)
		st = next

		for _, e := range effects {
			if m.cfg.Sink != nil {
				m.cfg.Sink(e)
			}
		}

		if f, ok := st.(Finished); ok {
			if f.Err != nil {
				m.logError("session failed", "error", f.Err.Error())
			}
			return f.Err
		}
	}
}

// logDebug logs a debug message if a logger is configured.
func (m *Machine) logDebug(msg string, keysAndValues ...interface{}) {
	if m.cfg.Logger != nil {
		m.cfg.Logger.Debug(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (m *Machine) logError(msg string, keysAndValues ...interface{}) {
	if m.cfg.Logger != nil {
		m.cfg.Logger.Error(msg, keysAndValues...)
	}
}
