package ui

import (
	"testing"

	"github.com/mattn/go-runewidth"

	"sigil/internal/demo"
)

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		ev   demo.Event
		want string
	}{
		{demo.Event{Status: demo.StatusQueued}, "queued"},
		{demo.Event{Status: demo.StatusDone}, "done"},
		{demo.Event{Status: demo.StatusError}, "error"},
		{demo.Event{Status: demo.StatusWorking, Stage: demo.StageInitialize}, "initializing"},
		{demo.Event{Status: demo.StatusWorking, Stage: demo.StageExecute}, "executing"},
	}
	for _, tc := range cases {
		if got := statusLabel(tc.ev); got != tc.want {
			t.Errorf("statusLabel(%+v) = %q, want %q", tc.ev, got, tc.want)
		}
	}
}

func TestApplyEventTracksBurnDown(t *testing.T) {
	events := make(chan demo.Event)
	model := NewRunModel("demo", []string{"a", "b"}, 100, events).(*runModel)

	model.applyEvent(demo.Event{
		Sample: "a", Stage: demo.StageExecute, Status: demo.StatusWorking, Consumed: 40,
	})
	if model.items[0].status != "executing" || model.items[0].consumed != 40 {
		t.Fatalf("item not updated: %+v", model.items[0])
	}
	if model.percent != 0.2 {
		t.Fatalf("percent = %v, want 0.2", model.percent)
	}

	model.applyEvent(demo.Event{
		Sample: "b", Stage: demo.StageExecute, Status: demo.StatusDone, Consumed: 60,
	})
	if model.items[1].status != "done" {
		t.Fatalf("item not updated: %+v", model.items[1])
	}
	if model.percent != 0.5 {
		t.Fatalf("percent = %v, want 0.5", model.percent)
	}

	// events for unknown samples are dropped
	model.applyEvent(demo.Event{Sample: "zzz", Consumed: 999})
	if model.percent != 0.5 {
		t.Fatalf("unknown sample moved the bar to %v", model.percent)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("a-very-long-sample-name", 10); runewidth.StringWidth(got) > 10 {
		t.Errorf("too wide: %q", got)
	}
	if got := truncate("abcdef", 2); runewidth.StringWidth(got) > 2 {
		t.Errorf("too wide: %q", got)
	}
}
