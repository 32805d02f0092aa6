package main

import (
	"fmt"
	"strings"

	"github.com/herlein/panscan/pkg/palette"
	"github.com/spf13/cobra"
)

var paletteSteps int

var paletteCmd = &cobra.Command{
	Use:   "palette [name]",
	Short: "List waterfall palettes",
	Long: `List the waterfall palettes: the built-in ones followed by those of
the palette file. With a name, print colors sampled along that palette.

Examples:
  panscan palette
  panscan palette Gqrx --steps 8
  panscan palette --palette-file ./palettes.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPalette,
}

func init() {
	paletteCmd.Flags().IntVar(&paletteSteps, "steps", 16, "number of colors to sample")
	rootCmd.AddCommand(paletteCmd)
}

func runPalette(cmd *cobra.Command, args []string) error {
	table, err := loadPalettes(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for i, name := range table.Names() {
			fmt.Fprintf(out, " %2d  %s\n", i, name)
		}
		return nil
	}

	p, ok := table.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown palette %q (have %s)", args[0], strings.Join(table.Names(), ", "))
	}
	if paletteSteps < 2 {
		paletteSteps = 2
	}

	fmt.Fprintf(out, "%s:\n", p.Name)
	for i := 0; i < paletteSteps; i++ {
		level := float64(i) / float64(paletteSteps-1)
		fmt.Fprintf(out, "  %5.3f  %s\n", level, palette.Hex(p.Color(level)))
	}
	return nil
}
