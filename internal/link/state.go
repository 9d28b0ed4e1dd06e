// Package link tracks the lifecycle of the connection to the robot
// peripheral. A single Machine owns the state; the scanner, connector, and
// bridge loop drive it through guarded transitions, and the transport's
// disconnect callback may fire from its own goroutine, so all access goes
// through a mutex.
package link

import "sync"

// State is the peripheral link state.
type State int

const (
	// Idle: not connected, scanning is allowed.
	Idle State = iota
	// ConnectPending: the scanner found the target, a connect is due.
	ConnectPending
	// Connecting: a connection attempt is in progress.
	Connecting
	// Ready: connected with both UART channels bound; commands may be sent.
	Ready
	// Disconnected: the transport reported a drop; the loop clears the
	// channels and resets to Idle on its next cycle.
	Disconnected
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ConnectPending:
		return "connect-pending"
	case Connecting:
		return "connecting"
	case Ready:
		return "ready"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Machine holds the link state and enforces the legal transitions. Every
// guard returns true if the transition was taken and false if the machine
// was not in the required source state.
type Machine struct {
	mu    sync.Mutex
	state State
}

// NewMachine returns a Machine in Idle.
func NewMachine() *Machine {
	return &Machine{state: Idle}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Found records a scan match: Idle -> ConnectPending.
func (m *Machine) Found() bool {
	return m.transition(Idle, ConnectPending)
}

// BeginConnect starts a connection attempt: ConnectPending -> Connecting.
func (m *Machine) BeginConnect() bool {
	return m.transition(ConnectPending, Connecting)
}

// Established records a fully discovered connection: Connecting -> Ready.
func (m *Machine) Established() bool {
	return m.transition(Connecting, Ready)
}

// Fail records a failed connection attempt: Connecting -> Idle. Scanning
// resumes on the next cycle; there is no retry limit.
func (m *Machine) Fail() bool {
	return m.transition(Connecting, Idle)
}

// Drop records a transport-reported disconnect: Ready -> Disconnected.
func (m *Machine) Drop() bool {
	return m.transition(Ready, Disconnected)
}

// Reset forces the machine back to Idle from any state.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Idle
}

func (m *Machine) transition(from, to State) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != from {
		return false
	}
	m.state = to
	return true
}
