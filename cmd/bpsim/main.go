// Package main provides the entry point for bpsim.
// bpsim is a trace-driven branch predictor simulator.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/bpsim/btb"
	"github.com/sarchlab/bpsim/predictor"
	"github.com/sarchlab/bpsim/trace"
)

var (
	configPath = flag.String("config", "", "Path to predictor configuration JSON file")
	btbEnable  = flag.Bool("btb", false, "Model branch target buffer residency")
	btbEntries = flag.Int("btb-entries", 512, "Number of BTB entries (power of 2)")
	btbWays    = flag.Int("btb-ways", 4, "BTB associativity")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	config, tracePath, err := parseArgs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		usage()
		os.Exit(1)
	}

	pred, err := predictor.New(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var targetBuffer *btb.BTB
	if *btbEnable {
		targetBuffer, err = btb.New(btb.Config{
			Entries:       *btbEntries,
			Associativity: *btbWays,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	f, err := os.Open(tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unable to open trace file %s: %v\n", tracePath, err)
		os.Exit(1)
	}
	defer f.Close()

	reader := trace.NewReader(f)
	for reader.Scan() {
		record := reader.Record()
		if targetBuffer != nil {
			targetBuffer.Lookup(record.Address)
			if record.Taken {
				targetBuffer.Allocate(record.Address)
			}
		}
		pred.PredictAndUpdate(record.Address, record.Taken)
	}
	if err := reader.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", tracePath, err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Trace: %s\n", tracePath)
		fmt.Printf("Scheme: %s\n", config.Scheme)
	}

	fmt.Print(formatCommand(config, tracePath))
	fmt.Print(formatReport(pred))
	if targetBuffer != nil {
		fmt.Print(formatBTBReport(targetBuffer))
	}
}

// usage prints the command-line synopsis.
func usage() {
	fmt.Fprintf(os.Stderr, "Usage: bpsim [options] bimodal <M2> <tracefile>\n")
	fmt.Fprintf(os.Stderr, "       bpsim [options] gshare <M1> <N> <tracefile>\n")
	fmt.Fprintf(os.Stderr, "       bpsim [options] hybrid <K> <M1> <N> <M2> <tracefile>\n")
	fmt.Fprintf(os.Stderr, "       bpsim -config <config.json> <tracefile>\n")
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
}

// parseArgs derives the predictor configuration and trace path from the
// positional arguments, or from the -config file when one is given.
func parseArgs(args []string) (predictor.Config, string, error) {
	if *configPath != "" {
		if len(args) != 1 {
			return predictor.Config{}, "", fmt.Errorf("-config mode takes exactly one trace file argument")
		}
		config, err := predictor.LoadConfig(*configPath)
		if err != nil {
			return predictor.Config{}, "", err
		}
		return config, args[0], nil
	}

	if len(args) < 1 {
		return predictor.Config{}, "", fmt.Errorf("missing predictor scheme")
	}

	scheme, err := predictor.ParseScheme(args[0])
	if err != nil {
		return predictor.Config{}, "", err
	}

	config := predictor.Config{Scheme: scheme}
	var widths []*uint32
	switch scheme {
	case predictor.SchemeBimodal:
		widths = []*uint32{&config.M2}
	case predictor.SchemeGshare:
		widths = []*uint32{&config.M1, &config.N}
	case predictor.SchemeHybrid:
		widths = []*uint32{&config.K, &config.M1, &config.N, &config.M2}
	}

	if len(args) != len(widths)+2 {
		return predictor.Config{}, "",
			fmt.Errorf("%s: wrong number of arguments: %d", scheme, len(args)-1)
	}

	for i, w := range widths {
		value, err := strconv.ParseUint(args[i+1], 10, 32)
		if err != nil {
			return predictor.Config{}, "", fmt.Errorf("invalid width parameter %q: %w", args[i+1], err)
		}
		*w = uint32(value)
	}

	return config, args[len(args)-1], nil
}

// formatCommand echoes the simulated command line, one argument set per
// scheme.
func formatCommand(config predictor.Config, tracePath string) string {
	var b strings.Builder
	b.WriteString("COMMAND\n")
	switch config.Scheme {
	case predictor.SchemeBimodal:
		fmt.Fprintf(&b, "bpsim %s %d %s\n", config.Scheme, config.M2, tracePath)
	case predictor.SchemeGshare:
		fmt.Fprintf(&b, "bpsim %s %d %d %s\n", config.Scheme, config.M1, config.N, tracePath)
	case predictor.SchemeHybrid:
		fmt.Fprintf(&b, "bpsim %s %d %d %d %d %s\n",
			config.Scheme, config.K, config.M1, config.N, config.M2, tracePath)
	}
	return b.String()
}
