// Package errs defines the error protocol shared by the evaluator and its
// collaborators.
//
// Every fallible operation in the interpreter resolves to one of four
// outcomes: a value, a *CheckError, a *RuntimeError, or a short return
// raised by a control-flow form (modelled in package vm, since it carries a
// language value). Check errors mark programs that a static analysis pass
// should have rejected before execution; runtime errors mark conditions
// that only live chain state could reveal. Both families carry stable
// numeric codes so tools and tests can match on them without parsing
// messages.
//
// Producers construct errors through the New* helpers so that message
// shapes stay consistent; consumers match with AsCheck / AsRuntime, which
// unwrap through fmt.Errorf chains.
package errs
