package dispatch

import (
	"log/slog"
	"strings"
	"time"

	"github.com/jmbarzee/visionpup/internal/link"
	"github.com/jmbarzee/visionpup/internal/vision"
)

// DefaultScoreThreshold is the minimum confidence a classification must
// exceed before its command is considered.
const DefaultScoreThreshold = 80

// Sender writes one command to the peripheral. Satisfied by the UART
// command characteristic.
type Sender interface {
	Write(data []byte) error
}

// Dispatcher turns classification results into transmitted commands.
type Dispatcher struct {
	table     Table
	machine   *link.Machine
	threshold int

	// sleep is swapped out in tests so cooldowns don't wall-block.
	sleep func(time.Duration)
}

// NewDispatcher creates a Dispatcher over the given table and link machine.
// threshold <= 0 selects DefaultScoreThreshold.
func NewDispatcher(table Table, machine *link.Machine, threshold int) *Dispatcher {
	if threshold <= 0 {
		threshold = DefaultScoreThreshold
	}
	return &Dispatcher{
		table:     table,
		machine:   machine,
		threshold: threshold,
		sleep:     time.Sleep,
	}
}

// Dispatch processes one batch of classification results in order. For each
// entry scoring above the threshold with a mapped, non-empty command, the
// command is written to send (only while the link is Ready, otherwise the
// write is skipped) and the command's cooldown then blocks the loop before
// the next entry. Unmapped classes and reserved (empty) commands are
// skipped without cooldown. Write failures are logged and dropped; the
// command is simply lost until the next qualifying result.
func (d *Dispatcher) Dispatch(results []vision.Result, send Sender) {
	for _, r := range results {
		if r.Score <= d.threshold {
			continue
		}
		cmd, ok := d.table[r.Class]
		if !ok {
			continue
		}
		text := strings.TrimSpace(cmd.Text)
		if text == "" {
			continue
		}

		if d.machine.Current() == link.Ready && send != nil {
			if err := send.Write([]byte(text)); err != nil {
				slog.Warn("[CMD] write failed, command dropped", "command", text, "error", err)
			} else {
				slog.Info("[CMD] sent", "command", text, "class", r.Class, "score", r.Score)
			}
		} else {
			slog.Debug("[CMD] link not ready, command skipped", "command", text, "class", r.Class)
		}

		if cmd.Cooldown > 0 {
			d.sleep(cmd.Cooldown)
		}
	}
}
