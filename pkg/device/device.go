// Package device connects the host to a control board, either over a serial
// port or through a simulated board running the same control loop.
package device

import (
	"github.com/itohio/potsynth/pkg/protocol"
)

const (
	// DefaultBaudRate is the board's serial speed.
	DefaultBaudRate = 115200
	// DefaultBufferSize is the default size of the messages channel.
	DefaultBufferSize = 100
)

// Device defines the interface for control boards (real or mocked).
type Device interface {
	Connect() error
	Close() error
	// Messages returns the channel of the current connection. It is closed
	// once the connection ends.
	Messages() <-chan protocol.Message
	IsConnected() bool
}

var (
	_ Device = (*Serial)(nil)
	_ Device = (*Mock)(nil)
)
