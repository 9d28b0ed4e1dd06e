package vision

import (
	"reflect"
	"testing"
)

func TestDecodeEventLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Result
	}{
		{
			name: "single class",
			line: `{"type":1,"name":"INVOKE","code":0,"data":{"classes":[[87,0]]}}`,
			want: []Result{{Score: 87, Class: 0}},
		},
		{
			name: "multiple classes keep order",
			line: `{"type":1,"name":"INVOKE","code":0,"data":{"classes":[[91,1],[54,2]]}}`,
			want: []Result{{Score: 91, Class: 1}, {Score: 54, Class: 2}},
		},
		{
			name: "no detections",
			line: `{"type":1,"name":"INVOKE","code":0,"data":{"classes":[]}}`,
			want: []Result{},
		},
		{
			name: "command reply ignored",
			line: `{"type":0,"name":"INVOKE","code":0,"data":{"classes":[[99,0]]}}`,
			want: nil,
		},
		{
			name: "error code ignored",
			line: `{"type":1,"name":"INVOKE","code":2,"data":{"classes":[[99,0]]}}`,
			want: nil,
		},
		{
			name: "other event ignored",
			line: `{"type":1,"name":"SAMPLE","code":0,"data":{"classes":[[99,0]]}}`,
			want: nil,
		},
		{
			name: "plain log line ignored",
			line: "boot: sensor v2.0.1",
			want: nil,
		},
		{
			name: "malformed json ignored",
			line: `{"type":1,"name":"INVOKE",`,
			want: nil,
		},
		{
			name: "short class pair skipped",
			line: `{"type":1,"name":"INVOKE","code":0,"data":{"classes":[[87],[63,1]]}}`,
			want: []Result{{Score: 63, Class: 1}},
		},
		{
			name: "blank line ignored",
			line: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeEventLine([]byte(tt.line))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decodeEventLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestConsumeSplitsLines(t *testing.T) {
	c := &SerialClassifier{}
	c.pending = []byte(`{"type":1,"name":"INVOKE","code":0,"data":{"classes":[[87,0]]}}` + "\n" +
		`{"type":1,"name":"INVOKE","code":0,"data":{"classes":[[92,4]]}}` + "\n")

	got := c.consume()
	want := []Result{{Score: 87, Class: 0}, {Score: 92, Class: 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("consume() = %v, want %v", got, want)
	}
	if len(c.pending) != 0 {
		t.Errorf("pending buffer not drained: %q", c.pending)
	}
}

func TestConsumeBuffersPartialLine(t *testing.T) {
	c := &SerialClassifier{}
	full := `{"type":1,"name":"INVOKE","code":0,"data":{"classes":[[81,0]]}}`

	// First chunk ends mid-line: nothing decodes yet.
	c.pending = []byte(full[:20])
	if got := c.consume(); len(got) != 0 {
		t.Fatalf("consume() on partial line = %v, want none", got)
	}

	// Rest of the line arrives.
	c.pending = append(c.pending, []byte(full[20:]+"\n")...)
	got := c.consume()
	want := []Result{{Score: 81, Class: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("consume() after completion = %v, want %v", got, want)
	}
}

func TestConsumeInterleavedNoise(t *testing.T) {
	c := &SerialClassifier{}
	c.pending = []byte("boot: sensor ready\n" +
		`{"type":1,"name":"INVOKE","code":0,"data":{"classes":[[85,5]]}}` + "\n" +
		"wifi: not configured\n")

	got := c.consume()
	want := []Result{{Score: 85, Class: 5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("consume() = %v, want %v", got, want)
	}
}
