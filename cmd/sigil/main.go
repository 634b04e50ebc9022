package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sigil/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sigil",
	Short: "Sigil contract evaluator and toolchain",
	Long:  `Sigil evaluates deterministic contract programs under a metered cost budget`,
}

// main registers subcommands and persistent flags, then executes the root
// command. Command errors exit with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(opsCmd)
	rootCmd.AddCommand(costsCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("trace", "", `write trace events to a file ("-" for stderr, *.ndjson for NDJSON)`)
	rootCmd.PersistentFlags().String("trace-level", "dispatch", "trace verbosity (off|boundary|dispatch|debug)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to a file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to a file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to a file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
