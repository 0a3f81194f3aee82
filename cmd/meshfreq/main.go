package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rodaine/table"
	"github.com/signalsfoundry/meshfreq/core"
	"github.com/spf13/pflag"
)

const version = "1.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one CLI invocation. It is separated from main so tests can
// drive it with arbitrary arguments and capture the output.
func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("meshfreq", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		channelName = fs.StringP("channel-name", "n", "LongFast", "Specify the channel name.")
		bandwidth   = fs.IntP("bandwidth", "b", 0, "Specify the bandwidth in kHz (0 = derive from the channel name).")
		region      = fs.StringP("region", "r", "US", "Specify the LoRa region. Use --region help to see available regions.")
		presets     = fs.BoolP("presets", "p", false, "Print the preset channel plan for the region instead of a single resolution.")
		showVersion = fs.BoolP("version", "v", false, "Print version and exit.")
	)

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "meshfreq %s\n", version)
		return 0
	}

	if *region == "help" {
		fmt.Fprintln(stdout, "Available LoRa regions:")
		writeRegionLines(stdout)
		return 0
	}

	band, err := core.LookupRegion(*region)
	if err != nil {
		fmt.Fprintf(stderr, "Error: Invalid region '%s' specified.\n", *region)
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Available regions:")
		writeRegionLines(stderr)
		return 1
	}

	if *presets {
		return printPresetPlan(stdout, stderr, band)
	}

	res, err := core.Resolve(core.Request{
		Region:       band.Code,
		Channel:      *channelName,
		BandwidthKHz: *bandwidth,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	printResolution(stdout, res)
	return 0
}

// writeRegionLines prints the catalog as indented "CODE: description" rows.
func writeRegionLines(w io.Writer) {
	for _, band := range core.Regions() {
		fmt.Fprintf(w, "  %s: %s\n", band.Code, band.Description)
	}
}

// printResolution writes a single resolution in the tool's plain-text shape.
// The slot is reported 1-based, matching what radio firmware logs show.
func printResolution(w io.Writer, res core.Resolution) {
	fmt.Fprintf(w, "Region: %s (%s)\n", res.Band.Code, res.Band.Description)
	fmt.Fprintf(w, "Frequency Range: %g - %g MHz\n", res.Band.StartMHz, res.Band.EndMHz)
	fmt.Fprintf(w, "Channel Name: %s\n", res.Channel)
	fmt.Fprintf(w, "Number of Frequency Slots: %d\n", res.SlotCount)
	fmt.Fprintf(w, "Frequency Slot: %d\n", res.SlotNumber())
	fmt.Fprintf(w, "Selected Frequency: %g MHz\n", res.FrequencyMHz)
	fmt.Fprintf(w, "Bandwidth: %d kHz\n", res.BandwidthKHz)
}

// printPresetPlan writes the full preset channel plan for one region as a
// table.
func printPresetPlan(stdout, stderr io.Writer, band core.RegionBand) int {
	resolutions, err := core.ResolvePresets(band.Code)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Region: %s (%s)\n", band.Code, band.Description)
	fmt.Fprintf(stdout, "Frequency Range: %g - %g MHz\n", band.StartMHz, band.EndMHz)

	tbl := table.New("Channel", "Bandwidth (kHz)", "Slots", "Slot", "Frequency (MHz)").WithWriter(stdout)
	for _, res := range resolutions {
		tbl.AddRow(res.Channel, res.BandwidthKHz, res.SlotCount, res.SlotNumber(),
			fmt.Sprintf("%g", res.FrequencyMHz))
	}
	tbl.Print()

	return 0
}
