// Package bridge runs the single cooperative loop tying the pieces
// together: scan while idle, connect when a peripheral is found, and poll
// the vision classifier while the link is ready. Transport callbacks never
// touch loop state directly; they post to a bounded event queue that the
// loop drains once per cycle.
package bridge

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmbarzee/visionpup/internal/ble"
	"github.com/jmbarzee/visionpup/internal/dispatch"
	"github.com/jmbarzee/visionpup/internal/link"
	"github.com/jmbarzee/visionpup/internal/vision"
)

// Options configures the bridge loop.
type Options struct {
	TargetName     string        // advertised peripheral name, exact match
	ScanDuration   time.Duration // length of one discovery sweep
	ConnectTimeout time.Duration // bound on one connection attempt
	LoopPause      time.Duration // pause between cycles
	ScoreThreshold int           // minimum classification confidence
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		TargetName:     "Bittle",
		ScanDuration:   5 * time.Second,
		ConnectTimeout: 10 * time.Second,
		LoopPause:      100 * time.Millisecond,
		ScoreThreshold: dispatch.DefaultScoreThreshold,
	}
}

type eventKind int

const (
	eventDisconnected eventKind = iota
	eventData
)

type event struct {
	kind eventKind
	data []byte
}

// eventQueueSize bounds the callback-to-loop queue. Callbacks drop events
// rather than block when the loop is behind (a long cooldown, typically).
const eventQueueSize = 16

// Bridge owns the link state machine and runs the main loop.
type Bridge struct {
	opts       Options
	machine    *link.Machine
	scanner    *ble.Scanner
	connector  *ble.Connector
	dispatcher *dispatch.Dispatcher
	classifier vision.Classifier

	// Loop-owned; callbacks never touch these.
	events   chan event
	channels *ble.Channels
	addr     string
}

// New wires a Bridge from its collaborators.
func New(opts Options, adapter ble.Adapter, classifier vision.Classifier, table dispatch.Table) *Bridge {
	if opts.ScanDuration <= 0 {
		opts.ScanDuration = 5 * time.Second
	}
	if opts.LoopPause <= 0 {
		opts.LoopPause = 100 * time.Millisecond
	}
	machine := link.NewMachine()
	return &Bridge{
		opts:       opts,
		machine:    machine,
		scanner:    ble.NewScanner(adapter, machine),
		connector:  ble.NewConnector(adapter, machine, opts.ConnectTimeout),
		dispatcher: dispatch.NewDispatcher(table, machine, opts.ScoreThreshold),
		classifier: classifier,
		events:     make(chan event, eventQueueSize),
	}
}

// State returns the current link state.
func (b *Bridge) State() link.State {
	return b.machine.Current()
}

// Run executes the loop until ctx is cancelled, then disconnects cleanly.
// Connection failures never end the loop; the bridge retries forever.
func (b *Bridge) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			b.shutdown()
			return nil
		}

		b.step(ctx)

		select {
		case <-ctx.Done():
			b.shutdown()
			return nil
		case <-time.After(b.opts.LoopPause):
		}
	}
}

// step runs one cycle: drain queued transport events, then act on the
// current link state.
func (b *Bridge) step(ctx context.Context) {
	b.drainEvents()

	switch b.machine.Current() {
	case link.Disconnected:
		b.channels = nil
		b.machine.Reset()
		slog.Info("[LINK] reset to idle, scanning resumes")

	case link.Idle:
		addr, found, err := b.scanner.Scan(ctx, b.opts.ScanDuration, b.opts.TargetName)
		if err != nil {
			slog.Warn("[SCAN] sweep failed", "error", err)
			return
		}
		if found {
			b.addr = addr
		}

	case link.ConnectPending:
		addr := b.addr
		b.addr = "" // consumed; a failure rescans from scratch
		channels, err := b.connector.Connect(ctx, addr, b.onDrop, b.onData)
		if err != nil {
			slog.Warn("[BLE] connect failed", "address", addr, "error", err)
			return
		}
		b.channels = channels

	case link.Ready:
		results, err := b.classifier.Poll()
		if err != nil {
			slog.Warn("[VISION] poll failed", "error", err)
			return
		}
		if len(results) == 0 {
			return
		}
		b.dispatcher.Dispatch(results, b.channels)
	}
}

// drainEvents applies every queued transport event, preserving arrival
// order, before the cycle's main action.
func (b *Bridge) drainEvents() {
	for {
		select {
		case ev := <-b.events:
			switch ev.kind {
			case eventDisconnected:
				slog.Warn("[BLE] peripheral disconnected")
				b.channels = nil
			case eventData:
				slog.Info("[ROBOT] " + string(ev.data))
			}
		default:
			return
		}
	}
}

// onDrop runs on the transport's callback goroutine. The state change is
// applied immediately so an in-flight dispatch stops transmitting; channel
// cleanup waits for the loop to drain the queue.
func (b *Bridge) onDrop() {
	b.machine.Drop()
	b.post(event{kind: eventDisconnected})
}

// onData is the notify callback for robot output lines.
func (b *Bridge) onData(data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	b.post(event{kind: eventData, data: cp})
}

func (b *Bridge) post(ev event) {
	select {
	case b.events <- ev:
	default:
		slog.Debug("[LINK] event queue full, event dropped", "kind", int(ev.kind))
	}
}

func (b *Bridge) shutdown() {
	if b.channels != nil {
		if err := b.channels.Disconnect(); err != nil {
			slog.Debug("[BLE] shutdown disconnect failed", "error", err)
		}
	}
	if b.classifier != nil {
		if err := b.classifier.Close(); err != nil {
			slog.Debug("[VISION] close failed", "error", err)
		}
	}
}
