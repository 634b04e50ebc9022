package main

import (
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sigil/internal/costs"
	"sigil/internal/vm"
)

var opsKind string

func init() {
	opsCmd.Flags().StringVar(&opsKind, "kind", "all", "show only one kind (native|special|all)")
}

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the operators the evaluator recognizes",
	Long: `List every reserved operator with its dispatch kind, arity and price.

Natives charge their schedule row before arguments are evaluated; special
forms receive raw expressions and charge inside as they go.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch opsKind {
		case "native", "special", "all":
			// supported
		default:
			return fmt.Errorf("unsupported kind %q (must be native, special or all)", opsKind)
		}
		if err := applyColorMode(cmd); err != nil {
			return err
		}

		names := vm.ReservedNames()
		slices.Sort(names)

		out := cmd.OutOrStdout()
		schedule := costs.DefaultSchedule()
		head := color.New(color.Bold)
		head.Fprintf(out, "%-18s %-8s %-9s %-14s %6s %9s\n", "NAME", "KIND", "ARITY", "COST", "BASE", "PER-UNIT")

		natives, specials := 0, 0
		for _, name := range names {
			callable, ok := vm.LookupReserved(name)
			if !ok {
				continue
			}
			if callable.Kind == vm.CallableSpecial {
				specials++
				if opsKind == "native" {
					continue
				}
				fmt.Fprintf(out, "%-18s %-8s %-9s %-14s %6s %9s\n", name, "special", "form", "-", "-", "-")
				continue
			}
			natives++
			if opsKind == "special" {
				continue
			}
			row := schedule.Row(callable.Cost)
			fmt.Fprintf(out, "%-18s %-8s %-9s %-14s %6d %9d\n",
				name, "native", arityLabel(callable), callable.Cost, row.Base, row.PerUnit)
		}
		fmt.Fprintf(out, "\n%d operators: %d native, %d special\n", natives+specials, natives, specials)
		return nil
	},
}

// arityLabel names the dispatch shape of a native handle.
func arityLabel(c vm.Callable) string {
	switch {
	case c.Single != nil:
		return "1"
	case c.Double != nil:
		return "2"
	default:
		return "variadic"
	}
}
