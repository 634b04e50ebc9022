package fuzztests

import "testing"

// addCorpusSeeds feeds the decoder byte patterns that reach each builder
// branch: the empty input, selector sweeps, and longer ramps that grow
// nested applications.
func addCorpusSeeds(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{7, 1, 0, 2, 0, 10, 0, 20})

	// one of every selector value
	sweep := make([]byte, 64)
	for i := range sweep {
		sweep[i] = byte(i)
	}
	f.Add(sweep)

	// list-heavy ramp: selector 6 and 7 dominate, children stay mixed
	ramp := make([]byte, 512)
	for i := range ramp {
		ramp[i] = byte(i*7 + 6)
	}
	f.Add(ramp)
}
