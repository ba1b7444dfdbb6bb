// Package main provides the entry point for bpsim.
// bpsim is a trace-driven branch predictor simulator.
//
// For the full CLI, use: go run ./cmd/bpsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("bpsim - Branch Predictor Simulator")
	fmt.Println("")
	fmt.Println("Usage: bpsim [options] <scheme> <widths...> <tracefile>")
	fmt.Println("")
	fmt.Println("Schemes:")
	fmt.Println("  bimodal <M2>              PC-indexed counter table")
	fmt.Println("  gshare  <M1> <N>          history-folded counter table")
	fmt.Println("  hybrid  <K> <M1> <N> <M2> chooser-arbitrated bimodal + gshare")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to predictor configuration JSON file")
	fmt.Println("  -btb       Model branch target buffer residency")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run the full simulator with: go run ./cmd/bpsim")
	os.Exit(0)
}
