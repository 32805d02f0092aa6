package main

import (
	"fmt"
	"strings"

	"github.com/herlein/panscan/pkg/bandplan"
	"github.com/herlein/panscan/pkg/freq"
	"github.com/herlein/panscan/pkg/logging"
	"github.com/herlein/panscan/pkg/palette"
	"github.com/spf13/cobra"
)

var bandplanFreq float64

var bandplanCmd = &cobra.Command{
	Use:   "bandplan",
	Short: "List or query frequency allocation tables",
	Long: `Load the frequency allocation tables of the band plan directory and
list them, or show the bands covering a frequency.

Examples:
  panscan bandplan --bandplan-dir ./bandplans
  panscan bandplan --bandplan-dir ./bandplans --freq 145.5e6`,
	RunE: runBandplan,
}

func init() {
	bandplanCmd.Flags().Float64Var(&bandplanFreq, "freq", 0, "show the bands covering this frequency (Hz)")
	rootCmd.AddCommand(bandplanCmd)
}

func loadBandplans(cmd *cobra.Command) (*bandplan.Registry, error) {
	reg := bandplan.NewRegistry()
	if appCfg.BandplanDir == "" {
		return reg, nil
	}

	problems, err := reg.LoadDir(appCfg.BandplanDir)
	if err != nil {
		return nil, err
	}
	for _, p := range problems {
		logger.Warn(cmd.Context(), "band plan problem", logging.String("dir", appCfg.BandplanDir), logging.Err(p))
	}
	return reg, nil
}

func runBandplan(cmd *cobra.Command, args []string) error {
	if appCfg.BandplanDir == "" {
		return fmt.Errorf("no band plan directory, use --bandplan-dir or bandplan_dir")
	}

	reg, err := loadBandplans(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cmd.Flags().Changed("freq") {
		f := int64(bandplanFreq)
		matches := reg.BandsAt(f)
		if len(matches) == 0 {
			fmt.Fprintf(out, "No allocation covers %s\n", freq.Format(f))
			return nil
		}
		fmt.Fprintf(out, "Allocations at %s:\n\n", freq.Format(f))
		for _, m := range matches {
			printBand(cmd, m.Table, m.Band)
		}
		return nil
	}

	fmt.Fprintf(out, "Loaded %d table(s) from %s:\n\n", reg.Len(), appCfg.BandplanDir)
	for _, name := range reg.Names() {
		t, _ := reg.Lookup(name)
		fmt.Fprintf(out, "%s (%d bands)\n", t.Name, len(t.Bands))
		for _, b := range t.Bands {
			printBand(cmd, "", b)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func printBand(cmd *cobra.Command, table string, b bandplan.Band) {
	var parts []string
	if table != "" {
		parts = append(parts, "["+table+"]")
	}
	parts = append(parts, fmt.Sprintf("%s - %s", freq.Format(b.Min), freq.Format(b.Max)))
	if b.Primary != "" {
		parts = append(parts, b.Primary)
	}
	if b.Secondary != "" {
		parts = append(parts, "("+b.Secondary+")")
	}
	if b.Footnotes != "" {
		parts = append(parts, b.Footnotes)
	}
	parts = append(parts, palette.Hex(b.Color))
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", strings.Join(parts, "  "))
}
