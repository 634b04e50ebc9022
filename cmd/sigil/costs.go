package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sigil/internal/costs"
)

var (
	costsSchedulePath string
	costsSize         uint64
)

func init() {
	costsCmd.Flags().StringVar(&costsSchedulePath, "schedule", "", "TOML file overriding schedule rows")
	costsCmd.Flags().Uint64Var(&costsSize, "size", 1, "argument size used for the example charge column")
}

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Show the effective cost schedule",
	Long: `Show every schedule row and the charge it produces at a given argument
size. Charges follow base + size*per_unit with overflow checks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyColorMode(cmd); err != nil {
			return err
		}
		schedule := costs.DefaultSchedule()
		if costsSchedulePath != "" {
			loaded, err := costs.LoadSchedule(costsSchedulePath)
			if err != nil {
				return err
			}
			schedule = loaded
		}

		out := cmd.OutOrStdout()
		printer := message.NewPrinter(language.English)
		head := color.New(color.Bold)
		head.Fprintf(out, "%-28s %8s %10s %16s\n", "COST", "BASE", "PER-UNIT", fmt.Sprintf("AT SIZE %d", costsSize))

		var total uint64
		for _, id := range costs.IDs() {
			row := schedule.Row(id)
			charge, err := schedule.Cost(id, costsSize)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			total += charge
			printer.Fprintf(out, "%-28s %8d %10d %16d\n", id.String(), row.Base, row.PerUnit, charge)
		}
		printer.Fprintf(out, "\none charge of every row at size %d burns %d units\n", costsSize, total)
		return nil
	},
}
