// Package fuzztests houses Go fuzz harnesses for the evaluation core. Fuzz
// input bytes are decoded into bounded expression trees and fed to the
// evaluator under a strict cost budget. The harnesses assert the failure
// discipline: every outcome is a value, a short return, a check error or a
// runtime error, and nothing panics.
package fuzztests
