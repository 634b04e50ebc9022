package demo

import (
	"context"
	"testing"

	"sigil/internal/ast"
	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/testkit"
	"sigil/internal/types"
)

func runOne(t *testing.T, name string, opts Options) Result {
	t.Helper()
	sample, ok := Find(name)
	if !ok {
		t.Fatalf("no sample %q", name)
	}
	results, err := Run(context.Background(), []Sample{sample}, opts)
	if err != nil {
		t.Fatal(err)
	}
	return results[0]
}

func wantEqual(t *testing.T, got, want types.Value) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestCatalogTreesWellFormed(t *testing.T) {
	for _, sample := range Catalog() {
		t.Run(sample.Name, func(t *testing.T) {
			exprs := sample.Deploy()
			if len(exprs) == 0 {
				t.Fatal("sample deploys nothing")
			}
			var next uint64 = 1
			for i := range exprs {
				next = ast.AssignIDs(&exprs[i], next)
			}
			for i := range exprs {
				if err := testkit.CheckExprInvariants(&exprs[i]); err != nil {
					t.Errorf("form %d: %v", i, err)
				}
			}
			if sample.Render() == "" {
				t.Error("empty render")
			}
		})
	}
}

func TestCatalogSamplesRun(t *testing.T) {
	results, err := Run(context.Background(), Catalog(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("%s: %v", res.Sample, res.Err)
			continue
		}
		sample, _ := Find(res.Sample)
		if len(res.Values) != len(sample.Transactions) {
			t.Errorf("%s: %d values for %d transactions",
				res.Sample, len(res.Values), len(sample.Transactions))
		}
		if res.Consumed == 0 {
			t.Errorf("%s: zero cost", res.Sample)
		}
		if res.Consumed > res.Limit {
			t.Errorf("%s: consumed %d over limit %d", res.Sample, res.Consumed, res.Limit)
		}
	}
}

func TestCounterOutcomes(t *testing.T) {
	res := runOne(t, "counter", Options{})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	wantEqual(t, res.Values[0], types.MakeOk(types.MakeIntFromInt64(1)))
	wantEqual(t, res.Values[1], types.MakeOk(types.MakeIntFromInt64(2)))
	wantEqual(t, res.Values[2], types.MakeIntFromInt64(2))
}

func TestVaultShortReturnBecomesValue(t *testing.T) {
	res := runOne(t, "vault", Options{})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	wantEqual(t, res.Values[0], types.MakeOk(types.MakeUIntFromUint64(70)))
	wantEqual(t, res.Values[1], types.MakeErr(types.MakeUIntFromUint64(1)))
	wantEqual(t, res.Values[2], types.MakeOk(types.MakeUIntFromUint64(0)))
}

func TestLedgerBalances(t *testing.T) {
	res := runOne(t, "ledger", Options{})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	wantEqual(t, res.Values[2], types.MakeUIntFromUint64(140))
	wantEqual(t, res.Values[3], types.MakeUIntFromUint64(0))
}

func TestCheckedMathTruncatesTowardZero(t *testing.T) {
	res := runOne(t, "checked-math", Options{})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	wantEqual(t, res.Values[0], types.MakeOk(types.MakeIntFromInt64(3)))
	wantEqual(t, res.Values[1], types.MakeErr(types.MakeUIntFromUint64(100)))
	wantEqual(t, res.Values[2], types.MakeOk(types.MakeIntFromInt64(-4)))
}

func TestDigestsShape(t *testing.T) {
	res := runOne(t, "digests", Options{})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	v := res.Values[0]
	if v.Kind != types.VKTuple {
		t.Fatalf("want tuple, got %s", v.Kind)
	}
	for _, field := range []ident.Name{"sha", "keccak"} {
		d, ok := v.Tuple.Get(field)
		if !ok || d.Kind != types.VKBuffer || len(d.Buffer) != 32 {
			t.Errorf("field %s: got %s", field, d)
		}
	}
}

func TestReportAggregates(t *testing.T) {
	res := runOne(t, "report", Options{})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	wantEqual(t, res.Values[0], types.MakeIntFromInt64(15))
	wantEqual(t, res.Values[1], types.MakeUIntFromUint64(2))
}

func TestParallelMatchesSequential(t *testing.T) {
	seq, err := Run(context.Background(), Catalog(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	par, err := Run(context.Background(), Catalog(), Options{Parallel: true})
	if err != nil {
		t.Fatal(err)
	}
	for i := range seq {
		if seq[i].Sample != par[i].Sample {
			t.Fatalf("order diverged at %d", i)
		}
		if seq[i].Consumed != par[i].Consumed {
			t.Errorf("%s: consumed %d sequentially, %d in parallel",
				seq[i].Sample, seq[i].Consumed, par[i].Consumed)
		}
		if len(seq[i].Values) != len(par[i].Values) {
			t.Fatalf("%s: value count diverged", seq[i].Sample)
		}
		for j := range seq[i].Values {
			if !seq[i].Values[j].Equal(par[i].Values[j]) {
				t.Errorf("%s transaction %d: %s vs %s",
					seq[i].Sample, j, seq[i].Values[j], par[i].Values[j])
			}
		}
	}
}

func TestBudgetFailureStaysInResult(t *testing.T) {
	res := runOne(t, "counter", Options{Budget: 1})
	if res.Err == nil {
		t.Fatal("want budget failure")
	}
	re, ok := errs.AsRuntime(res.Err)
	if !ok || re.Code != errs.RuntimeCostBalanceExceeded {
		t.Fatalf("want cost balance error, got %v", res.Err)
	}
}

func TestSinkSeesLifecycle(t *testing.T) {
	ch := make(chan Event, 64)
	sample, _ := Find("counter")
	_, err := Run(context.Background(), []Sample{sample}, Options{Sink: ChannelSink{Ch: ch}})
	if err != nil {
		t.Fatal(err)
	}
	close(ch)
	var events []Event
	for ev := range ch {
		events = append(events, ev)
	}
	if len(events) < 2 {
		t.Fatalf("want begin and end events at least, got %d", len(events))
	}
	first, last := events[0], events[len(events)-1]
	if first.Stage != StageInitialize || first.Status != StatusWorking {
		t.Errorf("first event %+v", first)
	}
	if last.Stage != StageExecute || last.Status != StatusDone {
		t.Errorf("last event %+v", last)
	}
	for _, ev := range events {
		if ev.Sample != "counter" {
			t.Errorf("event for %q", ev.Sample)
		}
	}
}

func TestNamesAndFind(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("empty catalog")
	}
	seen := map[string]bool{}
	for _, name := range names {
		if seen[name] {
			t.Errorf("duplicate sample %q", name)
		}
		seen[name] = true
		if _, ok := Find(name); !ok {
			t.Errorf("Find(%q) failed", name)
		}
	}
	if _, ok := Find("nope"); ok {
		t.Error("Find invented a sample")
	}
}
