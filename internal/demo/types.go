// Package demo carries the built-in sample programs and the runner that
// deploys and executes them. Every sample gets its own store, cost tracker
// and environment; nothing is shared between evaluations.
package demo

import (
	"time"

	"sigil/internal/ident"
	"sigil/internal/types"
)

// Stage describes a phase in a sample's run.
type Stage string

const (
	// StageInitialize is contract deployment.
	StageInitialize Stage = "initialize"
	// StageExecute is transaction execution.
	StageExecute Stage = "execute"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the sample is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the sample is currently running.
	StatusWorking Status = "working"
	// StatusDone indicates the sample finished cleanly.
	StatusDone Status = "done"
	// StatusError indicates the sample failed.
	StatusError Status = "error"
)

// Event reports progress for one sample.
type Event struct {
	Sample   string
	Stage    Stage
	Status   Status
	Err      error
	Consumed uint64
	Elapsed  time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- ev
}

// Transaction is one call a sample makes against its deployed contract.
type Transaction struct {
	Function ident.Name
	Args     []types.Value
}

// Result is the outcome of one sample run. Values holds one entry per
// completed transaction; on failure Err names the first error and Values
// keeps what succeeded before it.
type Result struct {
	Sample   string
	Values   []types.Value
	Err      error
	Consumed uint64
	Limit    uint64
	Elapsed  time.Duration
}
