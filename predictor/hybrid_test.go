package predictor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bpsim/predictor"
)

// snapshotTables deep-copies the predictor's table contents so later events
// cannot alias the snapshot.
func snapshotTables(p predictor.Predictor) [][]predictor.Counter {
	var snapshot [][]predictor.Counter
	for _, table := range p.Tables() {
		counters := make([]predictor.Counter, len(table.Counters))
		copy(counters, table.Counters)
		snapshot = append(snapshot, counters)
	}
	return snapshot
}

var _ = Describe("Hybrid", func() {
	It("should expose chooser, gshare, and bimodal tables in that order", func() {
		h := predictor.NewHybrid(1, 2, 1, 1)

		tables := h.Tables()
		Expect(tables).To(HaveLen(3))
		Expect(tables[0].Name).To(Equal("CHOOSER"))
		Expect(tables[1].Name).To(Equal("GSHARE"))
		Expect(tables[2].Name).To(Equal("BIMODAL"))
	})

	It("should initialize the chooser weakly biased toward bimodal", func() {
		h := predictor.NewHybrid(1, 2, 1, 1)

		Expect(h.Tables()[0].Counters).To(Equal([]predictor.Counter{1, 1}))
		Expect(h.Tables()[1].Counters).To(Equal([]predictor.Counter{2, 2, 2, 2}))
		Expect(h.Tables()[2].Counters).To(Equal([]predictor.Counter{2, 2}))
	})

	It("should train only the bimodal table while the chooser selects it", func() {
		h := predictor.NewHybrid(1, 2, 1, 1)

		gshareBefore := snapshotTables(h)[1]
		h.PredictAndUpdate(0x4, true)

		// Chooser counter 1 selects bimodal, so the gshare table is
		// untouched while bimodal's indexed counter trains.
		Expect(h.Tables()[1].Counters).To(Equal(gshareBefore))
		Expect(h.Tables()[2].Counters).To(Equal([]predictor.Counter{2, 3}))
	})

	It("should update history unconditionally", func() {
		h := predictor.NewHybrid(1, 4, 3, 1)

		// Chooser starts at 1, selecting bimodal; the gshare history must
		// still observe every outcome.
		h.PredictAndUpdate(0x4, true)
		h.PredictAndUpdate(0x4, true)
		h.PredictAndUpdate(0x4, true)

		Expect(h.History()).To(Equal(uint64(0x7)))
	})

	It("should leave the chooser unchanged when both sub-predictors agree", func() {
		h := predictor.NewHybrid(1, 2, 1, 1)

		// Both tables start weakly taken, so both predict taken; a taken
		// outcome is a tie and must not move the chooser.
		h.PredictAndUpdate(0x4, true)

		Expect(h.Tables()[0].Counters).To(Equal([]predictor.Counter{1, 1}))
	})

	Describe("chooser training", func() {
		// All events use address 0x4: chooser index 1, bimodal index 1.
		// The gshare table starts untrained (weakly taken), so it predicts
		// taken until the chooser hands it events; driving the bimodal
		// counter down first makes the two sub-predictions diverge.
		var h *predictor.Hybrid

		BeforeEach(func() {
			h = predictor.NewHybrid(1, 2, 1, 1)
		})

		It("should move toward bimodal when only bimodal is right", func() {
			h.PredictAndUpdate(0x4, false) // both predict taken: tie
			// Bimodal now predicts not-taken (counter 1), gshare still
			// predicts taken; a not-taken outcome favors bimodal.
			h.PredictAndUpdate(0x4, false)

			Expect(h.Tables()[0].Counters[1]).To(Equal(predictor.Counter(0)))
		})

		It("should move toward gshare when only gshare is right", func() {
			h.PredictAndUpdate(0x4, false) // tie, bimodal counter 2 -> 1
			// Bimodal predicts not-taken, gshare predicts taken; the taken
			// outcome favors gshare (chooser 1 -> 2) while training the
			// selected bimodal counter back to 2.
			h.PredictAndUpdate(0x4, true)
			// Gshare is selected from here on, so the bimodal counter is
			// frozen at 2 (always predicts taken). Not-taken outcomes
			// train gshare's counters down until it alone is right.
			h.PredictAndUpdate(0x4, false) // gshare wrong too: tie
			h.PredictAndUpdate(0x4, false) // gshare wrong too: tie
			h.PredictAndUpdate(0x4, false) // gshare right, bimodal wrong: 2 -> 3

			Expect(h.Tables()[0].Counters[1]).To(Equal(predictor.Counter(3)))
		})

		It("should train only the gshare table once the chooser selects it", func() {
			h.PredictAndUpdate(0x4, false)
			h.PredictAndUpdate(0x4, true)
			Expect(h.Tables()[0].Counters[1].Taken()).To(BeTrue())

			bimodalBefore := snapshotTables(h)[2]
			h.PredictAndUpdate(0x4, true)

			Expect(h.Tables()[2].Counters).To(Equal(bimodalBefore))
		})
	})

	It("should restore the initial state on Reset", func() {
		h := predictor.NewHybrid(1, 2, 1, 1)

		for i := 0; i < 10; i++ {
			h.PredictAndUpdate(uint64(i)<<2, i%3 == 0)
		}

		h.Reset()

		Expect(h.History()).To(Equal(uint64(0)))
		Expect(h.Stats().Predictions).To(Equal(uint64(0)))
		Expect(h.Tables()[0].Counters).To(Equal([]predictor.Counter{1, 1}))
		Expect(h.Tables()[1].Counters).To(Equal([]predictor.Counter{2, 2, 2, 2}))
		Expect(h.Tables()[2].Counters).To(Equal([]predictor.Counter{2, 2}))
	})
})
