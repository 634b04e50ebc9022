// Package vm evaluates resolved expression trees.
//
// Every validating node must compute byte-identical results and
// byte-identical cost totals for the same program, so the evaluator is
// strictly deterministic: single-threaded, synchronous, recursive, with
// argument evaluation order fixed left to right and every dispatch charged
// against the environment's budget before it runs.
//
// Each evaluation step has exactly four possible outcomes:
//
//   - a value;
//   - a check error (errs.CheckError): the program itself is invalid;
//   - a runtime error (errs.RuntimeError): the chain state or budget could
//     not support the evaluation;
//   - a short return (ShortReturn): an intentional typed early exit,
//     resolved into an ordinary result at the nearest function boundary.
//
// Check and runtime errors abort a transaction with no retained state;
// short returns are not failures.
package vm
