package device

import (
	"context"
	"fmt"
	"sync"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
	"go.uber.org/zap"

	"github.com/itohio/potsynth/pkg/protocol"
)

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial represents a connection to the control board over a serial port.
type Serial struct {
	port     string
	baudRate int
	bufSize  int
	logger   *zap.SugaredLogger

	conn      serial.Port
	messages  chan protocol.Message
	mu        sync.RWMutex
	cancel    context.CancelFunc
	connected bool
}

// New creates a new Serial device with the specified port, baud rate, and buffer size.
func New(port string, baudRate int, bufSize int, logger *zap.SugaredLogger) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Serial{
		port:     port,
		baudRate: baudRate,
		bufSize:  bufSize,
		logger:   logger.With("port", port),
		messages: make(chan protocol.Message, bufSize),
	}
}

// Ports returns a list of available serial ports. USB ports are described by
// their product name and VID:PID when the platform reports them.
func Ports() ([]Port, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		names, err := serial.GetPortsList()
		if err != nil {
			return nil, fmt.Errorf("failed to list serial ports: %w", err)
		}
		result := make([]Port, 0, len(names))
		for _, name := range names {
			result = append(result, Port{Name: name, Description: name})
		}
		return result, nil
	}

	result := make([]Port, 0, len(details))
	for _, d := range details {
		desc := d.Name
		if d.IsUSB {
			desc = fmt.Sprintf("%s (%s %s:%s)", d.Name, d.Product, d.VID, d.PID)
		}
		result = append(result, Port{
			Name:        d.Name,
			Description: desc,
		})
	}

	return result, nil
}

// Connect opens the serial port and starts reading messages.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	port, err := serial.Open(d.port, &serial.Mode{BaudRate: d.baudRate})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.conn = port
	d.cancel = cancel
	d.messages = make(chan protocol.Message, d.bufSize)
	d.connected = true

	go readLines(ctx, port, d.messages, d.logger)
	d.logger.Infow("connected", "baud", d.baudRate)

	return nil
}

// Close closes the port. The messages channel is closed by the reader once
// the pending read returns.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	d.cancel()
	d.connected = false

	err := d.conn.Close()
	d.conn = nil
	if err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", d.port, err)
	}

	d.logger.Info("disconnected")
	return nil
}

// Messages returns the channel for reading messages.
func (d *Serial) Messages() <-chan protocol.Message {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.messages
}

// IsConnected returns whether the device is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}
