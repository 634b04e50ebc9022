package costs

import (
	"math/bits"

	"sigil/internal/errs"
)

// Tracker is the cost collaborator the evaluator charges before every
// dispatch. Implementations never examine values; they only meter.
type Tracker interface {
	// Charge debits the budget for one operation of the given size.
	// Exhaustion and arithmetic overflow are runtime errors.
	Charge(id CostID, size uint64) error
	// Consumed reports the budget spent so far.
	Consumed() uint64
	// Limit reports the total budget; zero means unmetered.
	Limit() uint64
}

// LimitedTracker debits a fixed budget using a schedule.
type LimitedTracker struct {
	schedule *Schedule
	limit    uint64
	consumed uint64
}

// NewLimited builds a tracker with the given budget.
func NewLimited(schedule *Schedule, limit uint64) *LimitedTracker {
	return &LimitedTracker{schedule: schedule, limit: limit}
}

// Charge implements Tracker. The consumed total retains the overshooting
// charge so callers can see how far past the limit the program ran.
func (t *LimitedTracker) Charge(id CostID, size uint64) error {
	amount, err := t.schedule.Cost(id, size)
	if err != nil {
		return err
	}
	total, carry := bits.Add64(t.consumed, amount, 0)
	if carry != 0 {
		return errs.NewRuntimeError(errs.RuntimeCostOverflow,
			"consumed budget overflows charging %s", id)
	}
	t.consumed = total
	if t.consumed > t.limit {
		return errs.NewRuntimeError(errs.RuntimeCostBalanceExceeded,
			"budget exhausted: consumed %d of %d charging %s", t.consumed, t.limit, id)
	}
	return nil
}

func (t *LimitedTracker) Consumed() uint64 { return t.consumed }
func (t *LimitedTracker) Limit() uint64    { return t.limit }

// FreeTracker meters nothing. Tests and exploratory evaluation use it.
type FreeTracker struct{}

// NewFree builds an unmetered tracker.
func NewFree() FreeTracker { return FreeTracker{} }

func (FreeTracker) Charge(CostID, uint64) error { return nil }
func (FreeTracker) Consumed() uint64            { return 0 }
func (FreeTracker) Limit() uint64               { return 0 }
