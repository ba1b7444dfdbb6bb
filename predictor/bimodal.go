package predictor

// Bimodal predicts each branch from a single counter table indexed directly
// by PC bits. The low 2 address bits are dropped first (instruction
// alignment), then the low M2 bits select the counter.
type Bimodal struct {
	table Table
	stats Stats
}

// NewBimodal creates a bimodal predictor with a 2^m2 counter table.
// All counters start weakly taken.
func NewBimodal(m2 uint32) *Bimodal {
	return &Bimodal{
		table: NewTable(m2, WeaklyTaken),
	}
}

// index computes the table index for a given PC.
func (b *Bimodal) index(addr uint64) uint64 {
	return (addr >> 2) & b.table.indexMask()
}

// PredictAndUpdate predicts the branch at addr, trains the indexed counter
// with the actual outcome, and reports whether the prediction was correct.
func (b *Bimodal) PredictAndUpdate(addr uint64, taken bool) bool {
	idx := b.index(addr)
	predicted := b.table[idx].Taken()
	b.table[idx].Update(taken)

	correct := predicted == taken
	b.stats.record(correct)
	return correct
}

// Stats returns the accumulated prediction statistics.
func (b *Bimodal) Stats() Stats {
	return b.stats
}

// Tables returns the bimodal table contents.
func (b *Bimodal) Tables() []TableDump {
	return []TableDump{{Name: "BIMODAL", Counters: b.table}}
}

// Reset restores all counters to weakly taken and clears the statistics.
func (b *Bimodal) Reset() {
	b.table.Fill(WeaklyTaken)
	b.stats = Stats{}
}
