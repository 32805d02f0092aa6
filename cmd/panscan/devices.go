package main

import (
	"fmt"
	"strings"

	"github.com/google/gousb"
	"github.com/herlein/panscan/pkg/device"
	"github.com/herlein/panscan/pkg/freq"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

var (
	devicesLnb      float64
	devicesSelector string
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List SDR receivers attached over USB",
	Long: `List the supported SDR receivers attached over USB with their scan
limits once the LNB offset is removed.

Examples:
  panscan devices
  panscan devices --lnb -9750e6
  panscan devices -d "#1"`,
	RunE: runDevices,
}

func init() {
	devicesCmd.Flags().Float64Var(&devicesLnb, "lnb", 0, "LNB offset in Hz")
	devicesCmd.Flags().StringVarP(&devicesSelector, "device", "d", "", device.SelectorUsage())
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	ctx := gousb.NewContext()
	defer ctx.Close()

	devices, err := device.Enumerate(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(devices) == 0 {
		fmt.Fprintln(out, "No supported receivers found")
		return nil
	}

	if devicesSelector != "" {
		d, err := device.Select(devices, device.Selector(devicesSelector))
		if err != nil {
			return err
		}
		printDevice(cmd, d)
		return nil
	}

	fmt.Fprintf(out, "Found %d receiver(s):\n\n", len(devices))
	fmt.Fprintf(out, " %-3s %-28s %-10s %-27s %-11s\n", "#", "Device", "Driver", "Scan limits", "Status")
	fmt.Fprintf(out, "%s\n", strings.Repeat("-", 84))
	for i, d := range devices {
		l := freq.ScanLimits(d.MinFreq, d.MaxFreq, devicesLnb)
		fmt.Fprintf(out, " %-3d %-28s %-10s %-27s %-11s\n",
			i, d.Desc(), titleCaser.String(d.Driver),
			freq.Format(l.Min)+" - "+freq.Format(l.Max), status(d))
	}
	return nil
}

func printDevice(cmd *cobra.Command, d device.Descriptor) {
	out := cmd.OutOrStdout()
	l := freq.ScanLimits(d.MinFreq, d.MaxFreq, devicesLnb)

	fmt.Fprintf(out, "Device:      %s\n", d.Desc())
	fmt.Fprintf(out, "Driver:      %s\n", titleCaser.String(d.Driver))
	fmt.Fprintf(out, "USB:         %d:%d\n", d.Bus, d.Address)
	fmt.Fprintf(out, "Status:      %s\n", status(d))
	fmt.Fprintf(out, "Tuner range: %s - %s\n", freq.Format(int64(d.MinFreq)), freq.Format(int64(d.MaxFreq)))
	fmt.Fprintf(out, "Scan limits: %s - %s\n", freq.Format(l.Min), freq.Format(l.Max))
	if rtt, ok := device.PreferredRtt(d.Driver); ok {
		fmt.Fprintf(out, "Frame RTT:   %v\n", rtt)
	}

	if len(d.Gains) == 0 {
		fmt.Fprintln(out, "Gains:       none")
		return
	}
	fmt.Fprintln(out, "Gains:")
	for _, g := range d.Gains {
		fmt.Fprintf(out, "  %-6s %5.1f - %5.1f dB (step %.1f, default %.1f)\n", g.Name, g.Min, g.Max, g.Step, g.Default)
	}
}

func status(d device.Descriptor) string {
	if d.Available {
		return titleCaser.String("available")
	}
	return titleCaser.String("in use")
}
