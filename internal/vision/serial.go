package vision

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.bug.st/serial"
)

// readTimeout bounds a single port read so Poll never stalls the loop.
const readTimeout = 50 * time.Millisecond

// SerialClassifier reads the sensor's line-oriented JSON event stream from
// a serial port. Each inference event carries a "classes" array of
// [score, class] pairs; everything else on the wire (log lines, replies to
// commands, partial frames) is skipped.
type SerialClassifier struct {
	port    serial.Port
	pending []byte // carry-over for a line split across reads
	scratch []byte
}

// OpenSerial opens the sensor's serial port. baud <= 0 selects 921600, the
// sensor's default rate.
func OpenSerial(portName string, baud int) (*SerialClassifier, error) {
	if baud <= 0 {
		baud = 921600
	}
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("vision: open %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("vision: set read timeout: %w", err)
	}
	return &SerialClassifier{
		port:    port,
		scratch: make([]byte, 4096),
	}, nil
}

// Poll drains whatever the sensor has written since the last call and
// returns the classifications from any complete inference event lines, in
// arrival order. A read timeout with no data returns (nil, nil).
func (c *SerialClassifier) Poll() ([]Result, error) {
	for {
		n, err := c.port.Read(c.scratch)
		if err != nil {
			return nil, fmt.Errorf("vision: read: %w", err)
		}
		if n == 0 {
			// Read timeout: nothing buffered on the port.
			break
		}
		c.pending = append(c.pending, c.scratch[:n]...)
		if n < len(c.scratch) {
			break
		}
	}

	return c.consume(), nil
}

// consume extracts complete lines from the pending buffer and decodes them.
// A trailing partial line stays buffered for the next poll.
func (c *SerialClassifier) consume() []Result {
	var results []Result
	for {
		i := bytes.IndexByte(c.pending, '\n')
		if i < 0 {
			break
		}
		line := c.pending[:i]
		c.pending = c.pending[i+1:]
		results = append(results, decodeEventLine(line)...)
	}
	return results
}

// Close releases the serial port.
func (c *SerialClassifier) Close() error {
	return c.port.Close()
}

// Compile-time check that SerialClassifier implements Classifier.
var _ Classifier = (*SerialClassifier)(nil)

// inferenceEvent is the sensor's JSON event envelope. Only invoke events
// with a classes payload matter here.
type inferenceEvent struct {
	Type int    `json:"type"`
	Name string `json:"name"`
	Code int    `json:"code"`
	Data struct {
		Classes [][]int `json:"classes"`
	} `json:"data"`
}

// eventTypeStream is the envelope type the sensor uses for unsolicited
// inference output.
const eventTypeStream = 1

// decodeEventLine parses one line from the sensor. Non-JSON lines,
// non-inference events, error codes, and malformed class entries all decode
// to nothing; the stream is advisory and a bad line is just skipped.
func decodeEventLine(line []byte) []Result {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] != '{' {
		return nil
	}

	var ev inferenceEvent
	if err := json.Unmarshal(line, &ev); err != nil {
		return nil
	}
	if ev.Type != eventTypeStream || ev.Name != "INVOKE" || ev.Code != 0 {
		return nil
	}

	results := make([]Result, 0, len(ev.Data.Classes))
	for _, pair := range ev.Data.Classes {
		if len(pair) != 2 {
			continue
		}
		results = append(results, Result{Score: pair[0], Class: pair[1]})
	}
	return results
}
