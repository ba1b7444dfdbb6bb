package main

import (
	"fmt"
	"strings"

	"github.com/sarchlab/bpsim/btb"
	"github.com/sarchlab/bpsim/predictor"
)

// formatReport renders the end-of-run report: prediction counts, the
// misprediction rate, and the final contents of every table the predictor
// owns in table order.
func formatReport(pred predictor.Predictor) string {
	var b strings.Builder

	stats := pred.Stats()
	b.WriteString("OUTPUT\n")
	fmt.Fprintf(&b, "Number of predictions: %d\n", stats.Predictions)
	fmt.Fprintf(&b, "Number of mispredictions: %d\n", stats.Mispredictions)
	if stats.HasData() {
		fmt.Fprintf(&b, "Misprediction rate: %.2f%%\n", stats.MispredictionRate())
	} else {
		b.WriteString("Misprediction rate: no data\n")
	}

	for _, table := range pred.Tables() {
		fmt.Fprintf(&b, "FINAL %s CONTENTS\n", table.Name)
		for i, counter := range table.Counters {
			fmt.Fprintf(&b, "%d      %d\n", i, counter)
		}
	}

	return b.String()
}

// formatBTBReport renders the optional BTB residency statistics.
func formatBTBReport(targetBuffer *btb.BTB) string {
	var b strings.Builder

	stats := targetBuffer.Stats()
	b.WriteString("BTB\n")
	fmt.Fprintf(&b, "Number of BTB hits: %d\n", stats.Hits)
	fmt.Fprintf(&b, "Number of BTB misses: %d\n", stats.Misses)
	fmt.Fprintf(&b, "BTB hit rate: %.2f%%\n", stats.HitRate())

	return b.String()
}
