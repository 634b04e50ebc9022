package fuzztests

import (
	"testing"

	"sigil/internal/ast"
	"sigil/internal/vm"
)

func FuzzInitializeContract(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		b := &treeBuilder{data: input}
		n := int(b.next()%6) + 1
		exprs := make([]ast.Expr, 0, n)
		var id uint64 = 1
		for i := 0; i < n; i++ {
			e := b.topLevel()
			id = ast.AssignIDs(&e, id)
			exprs = append(exprs, e)
		}

		err := vm.InitializeContract(exprs, fuzzEnv())
		requireTypedOutcome(t, err)
	})
}
