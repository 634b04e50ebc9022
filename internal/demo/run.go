package demo

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"sigil/internal/ast"
	"sigil/internal/costs"
	"sigil/internal/datastore"
	"sigil/internal/ident"
	"sigil/internal/trace"
	"sigil/internal/types"
	"sigil/internal/vm"
)

// DefaultBudget bounds one sample when no budget is configured.
const DefaultBudget = 100_000

// demoIssuer deploys every sample; demoSender signs every transaction.
var (
	demoIssuer = types.StandardPrincipal{Version: 26, Hash: [20]byte{0xD0}}
	demoSender = types.StandardPrincipalData(types.StandardPrincipal{Version: 26, Hash: [20]byte{0x5E}})
)

// Options configure a run.
type Options struct {
	Budget   uint64          // cost limit per sample; DefaultBudget when zero
	Schedule *costs.Schedule // prices; DefaultSchedule when nil
	Parallel bool            // run samples concurrently
	Tracer   trace.Tracer    // attached to every environment; Nop when nil
	Sink     ProgressSink    // lifecycle events; nil means none
}

// Run executes the samples, one isolated environment per sample, and
// returns results in input order. Sample failures land in their Result;
// the returned error reports only run-level problems such as cancellation.
func Run(ctx context.Context, samples []Sample, opts Options) ([]Result, error) {
	if opts.Budget == 0 {
		opts.Budget = DefaultBudget
	}
	if opts.Schedule == nil {
		opts.Schedule = costs.DefaultSchedule()
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}

	results := make([]Result, len(samples))
	jobs := 1
	if opts.Parallel {
		jobs = min(runtime.NumCPU(), max(len(samples), 1))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range samples {
		g.Go(func(i int) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[i] = runSample(gctx, samples[i], opts)
				return nil
			}
		}(i))
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func runSample(ctx context.Context, sample Sample, opts Options) Result {
	start := time.Now()
	tracker := costs.NewLimited(opts.Schedule, opts.Budget)
	contract := vm.NewContractContext(types.QualifiedContractIdentifier{
		Issuer: demoIssuer,
		Name:   ident.MustContractName(sample.Name),
	})
	env := vm.NewEnvironment(datastore.NewMemoryStore(), tracker, opts.Tracer, contract)
	env.SetSender(demoSender)

	res := Result{Sample: sample.Name, Limit: opts.Budget}
	finish := func(err error) Result {
		res.Err = err
		res.Consumed = tracker.Consumed()
		res.Elapsed = time.Since(start)
		return res
	}
	emit := func(stage Stage, status Status, err error) {
		if opts.Sink == nil {
			return
		}
		opts.Sink.OnEvent(Event{
			Sample:   sample.Name,
			Stage:    stage,
			Status:   status,
			Err:      err,
			Consumed: tracker.Consumed(),
			Elapsed:  time.Since(start),
		})
	}

	emit(StageInitialize, StatusWorking, nil)
	exprs := sample.Deploy()
	var next uint64 = 1
	for i := range exprs {
		next = ast.AssignIDs(&exprs[i], next)
	}
	if err := vm.InitializeContract(exprs, env); err != nil {
		emit(StageInitialize, StatusError, err)
		return finish(err)
	}

	for _, tx := range sample.Transactions {
		if err := ctx.Err(); err != nil {
			emit(StageExecute, StatusError, err)
			return finish(err)
		}
		emit(StageExecute, StatusWorking, nil)
		v, err := vm.ExecuteTransaction(env, tx.Function, tx.Args)
		if err != nil {
			emit(StageExecute, StatusError, err)
			return finish(err)
		}
		res.Values = append(res.Values, v)
	}
	emit(StageExecute, StatusDone, nil)
	return finish(nil)
}
