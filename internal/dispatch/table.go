// Package dispatch maps vision classifier output to robot gait commands and
// transmits them over the UART command channel, one at a time with a
// per-command cooldown.
package dispatch

import "time"

// Command is a single robot skill invocation: the ASCII string written to
// the UART command channel and the cooldown enforced after sending it.
type Command struct {
	Text     string
	Cooldown time.Duration
}

// Table maps a classifier class id to its command. Read-only after
// construction.
type Table map[int]Command

// DefaultTable returns the built-in class-to-command mapping. Classes 3 and
// 6 are reserved slots; their empty text suppresses transmission.
func DefaultTable() Table {
	return Table{
		0: {Text: "kwkF", Cooldown: 3000 * time.Millisecond}, // walk forward
		1: {Text: "kpu", Cooldown: 5000 * time.Millisecond},  // push-ups
		2: {Text: "kcrF", Cooldown: 4000 * time.Millisecond}, // crouched crawl
		3: {Text: "", Cooldown: 0},                           // reserved
		4: {Text: "kkc", Cooldown: 4000 * time.Millisecond},  // kick
		5: {Text: "kvtL", Cooldown: 4000 * time.Millisecond}, // turn left 90
		6: {Text: "", Cooldown: 0},                           // reserved (dance)
	}
}
