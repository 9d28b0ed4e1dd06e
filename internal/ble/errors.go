package ble

import "errors"

// Connection-phase failures. All of them are non-fatal: the connector logs,
// tears down, and the link returns to idle so scanning resumes.
var (
	// ErrTransportUnreachable: the peripheral did not accept the connection.
	ErrTransportUnreachable = errors.New("ble: peripheral unreachable")
	// ErrServiceMissing: the UART service is absent on the peripheral.
	ErrServiceMissing = errors.New("ble: uart service missing")
	// ErrChannelMissing: one of the two UART characteristics is absent.
	ErrChannelMissing = errors.New("ble: uart characteristic missing")
)
