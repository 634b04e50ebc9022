package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sigil/internal/costs"
	"sigil/internal/demo"
	"sigil/internal/observ"
)

var (
	demoBudget       uint64
	demoParallel     bool
	demoUI           string
	demoSchedulePath string
	demoList         bool
	demoShow         bool
)

func init() {
	demoCmd.Flags().Uint64Var(&demoBudget, "budget", demo.DefaultBudget, "cost limit per sample")
	demoCmd.Flags().BoolVar(&demoParallel, "parallel", false, "run samples concurrently")
	demoCmd.Flags().StringVar(&demoUI, "ui", "auto", "render a live budget display (auto|on|off)")
	demoCmd.Flags().StringVar(&demoSchedulePath, "schedule", "", "TOML file overriding schedule rows")
	demoCmd.Flags().BoolVar(&demoList, "list", false, "list samples without running them")
	demoCmd.Flags().BoolVar(&demoShow, "show", false, "print sample sources without running them")
}

var demoCmd = &cobra.Command{
	Use:   "demo [sample...]",
	Short: "Run the built-in sample contracts",
	Long: `Deploy and execute the built-in sample contracts and report the value
and consumed budget of every transaction.

With no arguments every sample runs. Samples never share state: each one
gets its own store, cost tracker and environment.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyColorMode(cmd); err != nil {
			return err
		}
		samples, err := selectSamples(args)
		if err != nil {
			return err
		}
		if demoList {
			return renderSampleList(cmd, samples)
		}
		if demoShow {
			return renderSampleSources(cmd, samples)
		}

		if demoBudget == 0 {
			demoBudget = demo.DefaultBudget
		}
		opts := demo.Options{
			Budget:   demoBudget,
			Parallel: demoParallel,
		}
		if demoSchedulePath != "" {
			loaded, err := costs.LoadSchedule(demoSchedulePath)
			if err != nil {
				return err
			}
			opts.Schedule = loaded
		}

		tracer, traceCleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		defer traceCleanup()
		opts.Tracer = tracer

		profCleanup, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		defer profCleanup()

		uiMode, err := readSwitchMode("ui", demoUI)
		if err != nil {
			return err
		}

		var results []demo.Result
		if uiMode.resolve() {
			results, err = runDemoWithUI(cmd.Context(), "sigil demo", samples, opts)
		} else {
			results, err = demo.Run(cmd.Context(), samples, opts)
		}
		if err != nil {
			return err
		}
		renderErr := renderResults(cmd, samples, results)
		if err := renderTimings(cmd, results); err != nil {
			return err
		}
		return renderErr
	},
}

func selectSamples(args []string) ([]demo.Sample, error) {
	if len(args) == 0 {
		return demo.Catalog(), nil
	}
	samples := make([]demo.Sample, 0, len(args))
	for _, name := range args {
		sample, ok := demo.Find(name)
		if !ok {
			return nil, fmt.Errorf("unknown sample %q (have: %s)", name, strings.Join(demo.Names(), ", "))
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func renderSampleList(cmd *cobra.Command, samples []demo.Sample) error {
	out := cmd.OutOrStdout()
	nameStyle := color.New(color.Bold)
	for _, sample := range samples {
		nameStyle.Fprintf(out, "%-14s", sample.Name)
		fmt.Fprintf(out, " %s (%d transactions)\n", sample.Description, len(sample.Transactions))
	}
	return nil
}

func renderSampleSources(cmd *cobra.Command, samples []demo.Sample) error {
	out := cmd.OutOrStdout()
	head := color.New(color.Bold)
	for i, sample := range samples {
		if i > 0 {
			fmt.Fprintln(out)
		}
		head.Fprintf(out, ";; %s\n", sample.Name)
		fmt.Fprintln(out, sample.Render())
		for _, tx := range sample.Transactions {
			fmt.Fprintf(out, ";; calls %s\n", callString(tx))
		}
	}
	return nil
}

// renderResults prints one line per sample plus, unless --quiet is set,
// one line per completed transaction. Results arrive in sample order.
func renderResults(cmd *cobra.Command, samples []demo.Sample, results []demo.Result) error {
	out := cmd.OutOrStdout()
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	okStyle := color.New(color.FgGreen)
	errStyle := color.New(color.FgRed)

	failures := 0
	for i, res := range results {
		if res.Err != nil {
			failures++
			errStyle.Fprintf(out, "%s: %v\n", res.Sample, res.Err)
		} else {
			okStyle.Fprintf(out, "%s: %d/%d units in %s\n",
				res.Sample, res.Consumed, res.Limit, res.Elapsed.Round(time.Microsecond))
		}
		if quiet {
			continue
		}
		for j, value := range res.Values {
			fmt.Fprintf(out, "  %s -> %s\n", callString(samples[i].Transactions[j]), value)
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d samples failed", failures, len(results))
	}
	return nil
}

// renderTimings prints per-sample durations when --timings is set. The
// total line sums sample time, which exceeds wall time on parallel runs.
func renderTimings(cmd *cobra.Command, results []demo.Result) error {
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if !timings {
		return nil
	}
	timer := observ.NewTimer()
	for _, res := range results {
		timer.Add(res.Sample, res.Elapsed, fmt.Sprintf("%d units", res.Consumed))
	}
	fmt.Fprint(cmd.OutOrStdout(), timer.Summary())
	return nil
}

// callString renders a transaction the way it would appear in source.
func callString(tx demo.Transaction) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(string(tx.Function))
	for _, arg := range tx.Args {
		sb.WriteByte(' ')
		sb.WriteString(arg.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
