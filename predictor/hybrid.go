package predictor

// Hybrid composes a gshare table and a bimodal table under a chooser table
// that selects, per branch, which sub-prediction to trust. Only the selected
// sub-predictor's counter is trained on each event, so each table adapts
// only to the branches it actually predicted, while the chooser tracks which
// sub-predictor is locally more reliable. The single global history register
// belongs to the gshare half and observes every branch unconditionally.
type Hybrid struct {
	gshare  *Gshare
	bimodal *Bimodal
	chooser Table
	stats   Stats
}

// NewHybrid creates a hybrid predictor: a 2^k chooser table, a 2^m1 gshare
// table with an n-bit history register, and a 2^m2 bimodal table. The
// chooser starts weakly biased toward bimodal (counters at 1); both
// prediction tables start weakly taken.
func NewHybrid(k, m1, n, m2 uint32) *Hybrid {
	return &Hybrid{
		gshare:  NewGshare(m1, n),
		bimodal: NewBimodal(m2),
		chooser: NewTable(k, WeaklyNotTaken),
	}
}

// chooserIndex computes the chooser table index for a given PC. The window
// width k is independent of the sub-predictor widths.
func (h *Hybrid) chooserIndex(addr uint64) uint64 {
	return (addr >> 2) & h.chooser.indexMask()
}

// PredictAndUpdate runs one hybrid prediction cycle:
//
//  1. Both sub-predictions are read against the pre-update state.
//  2. The chooser counter picks which one is final (>= 2 selects gshare).
//  3. Only the selected sub-predictor's counter is trained.
//  4. The history register records the outcome unconditionally.
//  5. The chooser is trained on relative correctness: toward gshare when
//     only gshare was right, toward bimodal when only bimodal was right,
//     untouched on a tie.
func (h *Hybrid) PredictAndUpdate(addr uint64, taken bool) bool {
	gshareIdx := h.gshare.index(addr)
	gshareTaken := h.gshare.table[gshareIdx].Taken()
	bimodalIdx := h.bimodal.index(addr)
	bimodalTaken := h.bimodal.table[bimodalIdx].Taken()

	chooserIdx := h.chooserIndex(addr)
	useGshare := h.chooser[chooserIdx].Taken()

	var finalTaken bool
	if useGshare {
		finalTaken = gshareTaken
		h.gshare.table[gshareIdx].Update(taken)
	} else {
		finalTaken = bimodalTaken
		h.bimodal.table[bimodalIdx].Update(taken)
	}

	h.gshare.updateHistory(taken)

	gshareCorrect := gshareTaken == taken
	bimodalCorrect := bimodalTaken == taken
	if gshareCorrect && !bimodalCorrect {
		h.chooser[chooserIdx].Increment()
	} else if bimodalCorrect && !gshareCorrect {
		h.chooser[chooserIdx].Decrement()
	}

	correct := finalTaken == taken
	h.stats.record(correct)
	return correct
}

// History returns the current value of the shared global history register.
func (h *Hybrid) History() uint64 {
	return h.gshare.History()
}

// Stats returns the accumulated prediction statistics.
func (h *Hybrid) Stats() Stats {
	return h.stats
}

// Tables returns the chooser, gshare, and bimodal table contents, in that
// order.
func (h *Hybrid) Tables() []TableDump {
	return []TableDump{
		{Name: "CHOOSER", Counters: h.chooser},
		{Name: "GSHARE", Counters: h.gshare.table},
		{Name: "BIMODAL", Counters: h.bimodal.table},
	}
}

// Reset restores both sub-predictors, the chooser table, and the statistics
// to their freshly constructed state.
func (h *Hybrid) Reset() {
	h.gshare.Reset()
	h.bimodal.Reset()
	h.chooser.Fill(WeaklyNotTaken)
	h.stats = Stats{}
}
