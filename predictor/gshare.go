package predictor

// Gshare predicts each branch from a counter table indexed by PC bits
// XOR-folded with a global history register. Folding recent branch history
// into part of the index captures correlation between nearby branches
// without the combinatorial blow-up of a full (PC, history) concatenated
// index.
type Gshare struct {
	table Table

	// history is the global history shift register: bit n-1 holds the most
	// recent outcome. Always masked to n bits.
	history uint64
	m1      uint32
	n       uint32

	stats Stats
}

// NewGshare creates a gshare predictor with a 2^m1 counter table and an
// n-bit global history register. Requires n <= m1 (enforced by
// Config.Validate when constructed through New). All counters start weakly
// taken; history starts at zero.
func NewGshare(m1, n uint32) *Gshare {
	return &Gshare{
		table: NewTable(m1, WeaklyTaken),
		m1:    m1,
		n:     n,
	}
}

// index folds the top n address bits of the m1-bit window with the global
// history, then concatenates the remaining low address bits:
//
//	index = (pcUpper XOR history) << (m1-n) | pcLower
func (g *Gshare) index(addr uint64) uint64 {
	nMask := uint64(1)<<g.n - 1
	pcUpper := (addr >> (g.m1 - g.n + 2)) & nMask
	folded := pcUpper ^ (g.history & nMask)
	pcLower := (addr >> 2) & (uint64(1)<<(g.m1-g.n) - 1)
	return folded<<(g.m1-g.n) | pcLower
}

// updateHistory shifts the history register right by one and records the
// newest outcome in bit n-1. A zero-width register stays zero.
func (g *Gshare) updateHistory(taken bool) {
	if g.n == 0 {
		return
	}
	g.history >>= 1
	if taken {
		g.history |= 1 << (g.n - 1)
	}
	g.history &= uint64(1)<<g.n - 1
}

// PredictAndUpdate predicts the branch at addr, trains the indexed counter,
// shifts the actual outcome into the history register, and reports whether
// the prediction was correct.
func (g *Gshare) PredictAndUpdate(addr uint64, taken bool) bool {
	idx := g.index(addr)
	predicted := g.table[idx].Taken()
	g.table[idx].Update(taken)
	g.updateHistory(taken)

	correct := predicted == taken
	g.stats.record(correct)
	return correct
}

// History returns the current value of the global history register.
func (g *Gshare) History() uint64 {
	return g.history
}

// Stats returns the accumulated prediction statistics.
func (g *Gshare) Stats() Stats {
	return g.stats
}

// Tables returns the gshare table contents.
func (g *Gshare) Tables() []TableDump {
	return []TableDump{{Name: "GSHARE", Counters: g.table}}
}

// Reset restores all counters to weakly taken, zeroes the history register,
// and clears the statistics.
func (g *Gshare) Reset() {
	g.table.Fill(WeaklyTaken)
	g.history = 0
	g.stats = Stats{}
}
