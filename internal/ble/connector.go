package ble

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmbarzee/visionpup/internal/link"
)

// Connector opens a connection to a scanned peripheral and binds its UART
// channels.
type Connector struct {
	adapter Adapter
	machine *link.Machine
	timeout time.Duration
}

// NewConnector creates a Connector. timeout bounds a single connection
// attempt; zero means 10 seconds.
func NewConnector(adapter Adapter, machine *link.Machine, timeout time.Duration) *Connector {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Connector{adapter: adapter, machine: machine, timeout: timeout}
}

// Connect drives the link ConnectPending -> Connecting, opens a connection
// to address, discovers the UART service and its two characteristics, and
// subscribes onData to the notify channel. onDrop is registered as the
// transport disconnect callback; it may fire from the transport's goroutine
// and must not block.
//
// On any failure the connection is torn down, the link returns to Idle, and
// the address should be discarded (a fresh scan rediscovers it). On success
// the link is Ready and both channels are populated.
func (c *Connector) Connect(ctx context.Context, address string, onDrop func(), onData func([]byte)) (*Channels, error) {
	if !c.machine.BeginConnect() {
		return nil, fmt.Errorf("ble: connect attempted while %s", c.machine.Current())
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := c.adapter.Connect(ctx, address)
	if err != nil {
		c.machine.Fail()
		return nil, fmt.Errorf("%w: %v", ErrTransportUnreachable, err)
	}

	svc, err := conn.DiscoverService(UARTServiceUUID)
	if err != nil {
		c.fail(conn)
		return nil, fmt.Errorf("%w: %v", ErrServiceMissing, err)
	}

	command, err := svc.DiscoverCharacteristic(UARTRXCharUUID)
	if err != nil {
		c.fail(conn)
		return nil, fmt.Errorf("%w: rx (command): %v", ErrChannelMissing, err)
	}

	events, err := svc.DiscoverCharacteristic(UARTTXCharUUID)
	if err != nil {
		c.fail(conn)
		return nil, fmt.Errorf("%w: tx (events): %v", ErrChannelMissing, err)
	}

	// A peripheral whose TX characteristic refuses notifications can still
	// take commands, so this is logged but non-fatal.
	if err := events.Subscribe(onData); err != nil {
		slog.Warn("[BLE] notify subscribe failed, continuing without robot output", "error", err)
	}

	conn.OnDisconnect(onDrop)
	c.machine.Established()
	slog.Info("[BLE] connected", "address", address)

	return &Channels{Command: command, Events: events, conn: conn}, nil
}

// fail tears down a half-opened connection and resets the link to Idle.
func (c *Connector) fail(conn Connection) {
	if err := conn.Disconnect(); err != nil {
		slog.Debug("[BLE] teardown disconnect failed", "error", err)
	}
	c.machine.Fail()
}
