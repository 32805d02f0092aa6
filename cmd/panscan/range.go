package main

import (
	"fmt"
	"strings"

	"github.com/herlein/panscan/pkg/device"
	"github.com/herlein/panscan/pkg/freq"
	"github.com/spf13/cobra"
)

var (
	rangeDriver string
	rangeLnb    float64
	rangeStart  float64
	rangeEnd    float64
	rangeFull   bool
)

var rangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Compute the scan range of a receiver",
	Long: `Compute the scan limits of a known receiver after removing the LNB
offset, and fit a requested scan range into them.

Examples:
  panscan range --driver rtlsdr
  panscan range --driver hackrf --lnb -9750e6 --start 10.7e9 --end 11.7e9
  panscan range --driver airspy --full`,
	RunE: runRange,
}

func init() {
	rangeCmd.Flags().StringVar(&rangeDriver, "driver", "rtlsdr", "receiver driver ("+strings.Join(driverNames(), ", ")+")")
	rangeCmd.Flags().Float64Var(&rangeLnb, "lnb", 0, "LNB offset in Hz")
	rangeCmd.Flags().Float64Var(&rangeStart, "start", 88e6, "requested scan start in Hz")
	rangeCmd.Flags().Float64Var(&rangeEnd, "end", 108e6, "requested scan end in Hz")
	rangeCmd.Flags().BoolVar(&rangeFull, "full", false, "scan the whole device range")
	rootCmd.AddCommand(rangeCmd)
}

func driverNames() []string {
	var names []string
	for _, d := range device.Drivers() {
		names = append(names, d.Name)
	}
	return names
}

func runRange(cmd *cobra.Command, args []string) error {
	drv, err := device.LookupDriver(rangeDriver)
	if err != nil {
		return err
	}

	limits := freq.ScanLimits(drv.MinFreq, drv.MaxFreq, rangeLnb)
	requested := freq.Range{Start: int64(rangeStart), End: int64(rangeEnd)}
	scan := freq.ResolveRange(limits, requested, rangeFull)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Receiver:    %s (%s)\n", drv.Label, titleCaser.String(drv.Name))
	fmt.Fprintf(out, "Tuner range: %s - %s\n", freq.Format(int64(drv.MinFreq)), freq.Format(int64(drv.MaxFreq)))
	fmt.Fprintf(out, "LNB offset:  %s\n", freq.Format(int64(rangeLnb)))
	fmt.Fprintf(out, "Scan limits: %s - %s\n", freq.Format(limits.Min), freq.Format(limits.Max))
	fmt.Fprintf(out, "Scan range:  %s - %s (%s wide)\n",
		freq.Format(scan.Start), freq.Format(scan.End), freq.Format(scan.Width()))
	if scan != requested.Ordered() && !rangeFull {
		fmt.Fprintln(out, "             adjusted to fit the scan limits")
	}
	return nil
}
