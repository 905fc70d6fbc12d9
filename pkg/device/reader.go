package device

import (
	"bufio"
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/itohio/potsynth/pkg/protocol"
)

// readLines parses lines from r into out until r is exhausted or ctx is done.
// It owns out and closes it on return.
//
// Value updates are dropped when out is full. Toggle messages carry state
// the host cannot recover from a later line, so those wait for room.
func readLines(ctx context.Context, r io.Reader, out chan<- protocol.Message, logger *zap.SugaredLogger) {
	defer close(out)
	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("panic while reading device", "panic", r)
		}
	}()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		line := scanner.Text()
		msg, err := protocol.Parse(line)
		if err != nil {
			if !errors.Is(err, protocol.ErrEmpty) {
				logger.Warnw("failed to parse line", "line", line, "error", err)
			}
			continue
		}
		logger.Debugw("received", "message", msg)

		if msg.Kind == protocol.KindToggle {
			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
			continue
		}

		select {
		case out <- msg:
		case <-ctx.Done():
			return
		default:
			logger.Warnw("messages channel full, dropping message", "message", msg)
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.ErrClosedPipe) && ctx.Err() == nil {
		logger.Errorw("error reading from device", "error", err)
	}
}
