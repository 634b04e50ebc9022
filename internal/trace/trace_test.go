package trace

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"off", LevelOff, true},
		{"boundary", LevelBoundary, true},
		{"dispatch", LevelDispatch, true},
		{"DEBUG", LevelDebug, true},
		{"verbose", LevelOff, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelBoundary, FormatText)

	tr.Emit(Event{Kind: KindPoint, Scope: ScopeDispatch, Name: "native:sha256"})
	if buf.Len() != 0 {
		t.Fatalf("dispatch event should be filtered at boundary level, got %q", buf.String())
	}

	tr.Emit(Event{Kind: KindBegin, Scope: ScopeBoundary, Name: "transaction"})
	if !strings.Contains(buf.String(), "transaction") {
		t.Errorf("boundary event missing: %q", buf.String())
	}
}

func TestStreamTextFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	tr.Emit(Event{
		Kind:   KindPoint,
		Scope:  ScopeDetail,
		Depth:  2,
		Name:   "print",
		Detail: "u7",
		Extra:  map[string]string{"cost": "2", "budget": "90"},
	})

	line := buf.String()
	// Two levels of depth indent the bullet by four spaces.
	if !strings.Contains(line, "    • print (u7)") {
		t.Errorf("unexpected text rendering: %q", line)
	}
	// Sorted extra keys keep output reproducible.
	if !strings.Contains(line, "{budget=90, cost=2}") {
		t.Errorf("extra keys not sorted: %q", line)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	tr.Emit(Event{Kind: KindEnd, Scope: ScopeDispatch, Name: "special:let", Time: time.Unix(0, 0).UTC()})

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if decoded["kind"] != "end" || decoded["name"] != "special:let" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestSeqMonotonic(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	tr.Emit(Event{Kind: KindPoint, Scope: ScopeBoundary, Name: "a"})
	tr.Emit(Event{Kind: KindPoint, Scope: ScopeBoundary, Name: "b"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var first, second struct {
		Seq uint64 `json:"seq"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatal(err)
	}
	if second.Seq <= first.Seq {
		t.Errorf("sequence not monotonic: %d then %d", first.Seq, second.Seq)
	}
}

func TestChannelTracerDropsWhenFull(t *testing.T) {
	tr := NewChannelTracer(1, LevelDebug)
	tr.Emit(Event{Kind: KindPoint, Scope: ScopeBoundary, Name: "kept"})
	tr.Emit(Event{Kind: KindPoint, Scope: ScopeBoundary, Name: "dropped"})
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}

	var names []string
	for ev := range tr.Events() {
		names = append(names, ev.Name)
	}
	if len(names) != 1 || names[0] != "kept" {
		t.Errorf("channel contents = %v", names)
	}
	// Close is idempotent.
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNopIsDisabled(t *testing.T) {
	if Nop.Enabled() {
		t.Error("Nop tracer should be disabled")
	}
	Nop.Emit(Event{Kind: KindPoint, Scope: ScopeBoundary, Name: "ignored"})
	if err := Nop.Close(); err != nil {
		t.Error(err)
	}
}
