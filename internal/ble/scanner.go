package ble

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmbarzee/visionpup/internal/link"
)

// Scanner searches for the robot peripheral by its advertised name.
type Scanner struct {
	adapter Adapter
	machine *link.Machine
}

// NewScanner creates a Scanner driving the given link machine.
func NewScanner(adapter Adapter, machine *link.Machine) *Scanner {
	return &Scanner{adapter: adapter, machine: machine}
}

// Scan runs a timed discovery sweep and returns the address of the first
// advertisement whose name exactly equals targetName. A match aborts the
// sweep early and drives the link Idle -> ConnectPending. No match within
// the duration returns found=false with a nil error; the caller simply
// scans again next cycle. Scan is a no-op unless the link is Idle.
func (s *Scanner) Scan(ctx context.Context, duration time.Duration, targetName string) (addr string, found bool, err error) {
	if s.machine.Current() != link.Idle {
		return "", false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	err = s.adapter.Scan(ctx, func(adv Advertisement) bool {
		if adv.Name != targetName {
			return false
		}
		slog.Info("[SCAN] peripheral found", "name", adv.Name, "address", adv.Address, "rssi", adv.RSSI)
		addr = adv.Address
		found = true
		return true
	})
	if err != nil {
		return "", false, err
	}

	if found {
		s.machine.Found()
	}
	return addr, found, nil
}
