// Package trace is the developer output channel of the evaluator.
//
// Tracing is observability only: enabling or disabling it never changes an
// evaluation result, a cost charge, or an error. The evaluator emits events
// at three granularities - call boundaries (transactions, contract
// initialization), per-operator dispatch, and value-level detail such as
// print output - and a Level filters them.
//
// Tracers must be cheap when disabled; the Nop singleton is the default
// everywhere.
package trace
