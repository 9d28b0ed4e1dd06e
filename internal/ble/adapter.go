// Package ble provides the BLE central for talking to the robot peripheral.
// It handles scanning by advertised name, connecting, Nordic UART Service
// discovery, and command transmission over Bluetooth Low Energy.
package ble

import "context"

// Nordic UART Service UUIDs. RX is written by the central (commands in),
// TX notifies the central (robot output).
const (
	UARTServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	UARTRXCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e"
	UARTTXCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e"
)

// Advertisement is a single advertisement event seen during a scan.
type Advertisement struct {
	Name    string
	Address string
	RSSI    int
}

// Characteristic represents a BLE GATT characteristic.
type Characteristic interface {
	// Write sends data to the characteristic as an unacknowledged write
	// command. Delivery is fire-and-forget.
	Write(data []byte) error
	// Subscribe registers a callback for notifications on this characteristic.
	Subscribe(callback func(data []byte)) error
}

// Service represents a discovered GATT service on a connected peripheral.
type Service interface {
	// DiscoverCharacteristic finds a characteristic by UUID within the service.
	DiscoverCharacteristic(charUUID string) (Characteristic, error)
}

// Connection represents an active BLE connection to a peripheral.
type Connection interface {
	// DiscoverService finds a service by UUID.
	DiscoverService(serviceUUID string) (Service, error)
	// Disconnect terminates the connection.
	Disconnect() error
	// OnDisconnect registers a callback invoked when the connection drops.
	// The callback may fire from the transport's own goroutine and must not
	// block.
	OnDisconnect(callback func())
}

// Adapter abstracts the BLE hardware adapter for testing.
type Adapter interface {
	// Enable powers on the BLE adapter.
	Enable() error
	// Scan reports advertisements to found until found returns true or ctx
	// is done.
	Scan(ctx context.Context, found func(Advertisement) bool) error
	// Connect establishes a connection to the peripheral at the given
	// address (a MAC on Linux, a CoreBluetooth UUID on macOS).
	Connect(ctx context.Context, address string) (Connection, error)
}

// Channels is the pair of UART characteristics bound to a connected
// peripheral. Valid only while the link is ready; cleared on disconnect.
type Channels struct {
	// Command is the RX characteristic: commands written to the robot.
	Command Characteristic
	// Events is the TX characteristic: notifications from the robot.
	Events Characteristic

	conn Connection
}

// Bound reports whether both channels are populated.
func (ch *Channels) Bound() bool {
	return ch != nil && ch.Command != nil && ch.Events != nil
}

// Disconnect closes the underlying connection. Used on shutdown; loss of
// connection during operation is reported through the disconnect callback
// instead.
func (ch *Channels) Disconnect() error {
	if ch == nil || ch.conn == nil {
		return nil
	}
	return ch.conn.Disconnect()
}
