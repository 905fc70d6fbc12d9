package main

import (
	"context"

	"github.com/itohio/potsynth/pkg/protocol"
)

// runHeadless connects to the board and logs every message until ctx is
// cancelled or the device goes away.
func runHeadless(ctx context.Context, s *session) error {
	err := s.connect(func(msg protocol.Message) {
		st := s.osc.State()
		if msg.Kind == protocol.KindToggle {
			s.logger.Infow("audio toggled", "enabled", st.Enabled)
			return
		}
		s.logger.Infow("tone", "frequency", st.Frequency, "amplitude", st.Amplitude)
	})
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		s.logger.Info("interrupted")
	case <-s.done():
		s.logger.Warn("device disconnected")
	}
	return nil
}
