package predictor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bpsim/predictor"
)

var _ = Describe("Gshare", func() {
	It("should start with zero history and weakly taken counters", func() {
		g := predictor.NewGshare(2, 2)

		Expect(g.History()).To(Equal(uint64(0)))
		Expect(g.Tables()[0].Name).To(Equal("GSHARE"))
		Expect(g.Tables()[0].Counters).To(Equal([]predictor.Counter{2, 2, 2, 2}))
	})

	It("should fold PC bits with history into the index", func() {
		// M1=2, N=2: for address 0x4 with history 0,
		// pcUpper = (0x4>>2)&3 = 1, folded = 1 XOR 0 = 1, pcLower is
		// zero-width, so index = 1.
		g := predictor.NewGshare(2, 2)

		correct := g.PredictAndUpdate(0x4, true)

		Expect(correct).To(BeTrue())
		Expect(g.Tables()[0].Counters).To(Equal([]predictor.Counter{2, 3, 2, 2}))
		Expect(g.History()).To(Equal(uint64(2))) // binary 10
	})

	It("should saturate history at all ones after N taken branches", func() {
		g := predictor.NewGshare(8, 4)

		for i := 0; i < 4; i++ {
			g.PredictAndUpdate(0x1000, true)
		}

		Expect(g.History()).To(Equal(uint64(0xF)))
	})

	It("should drain history to zero after N not-taken branches", func() {
		g := predictor.NewGshare(8, 4)

		for i := 0; i < 4; i++ {
			g.PredictAndUpdate(0x1000, true)
		}
		Expect(g.History()).To(Equal(uint64(0xF)))

		for i := 0; i < 4; i++ {
			g.PredictAndUpdate(0x1000, false)
		}
		Expect(g.History()).To(Equal(uint64(0)))
	})

	It("should shift the newest outcome into the top history bit", func() {
		g := predictor.NewGshare(8, 4)

		g.PredictAndUpdate(0x1000, true)
		Expect(g.History()).To(Equal(uint64(0x8))) // 1000

		g.PredictAndUpdate(0x1000, false)
		Expect(g.History()).To(Equal(uint64(0x4))) // 0100

		g.PredictAndUpdate(0x1000, true)
		Expect(g.History()).To(Equal(uint64(0xA))) // 1010
	})

	It("should keep a zero-width history register at zero", func() {
		g := predictor.NewGshare(4, 0)

		g.PredictAndUpdate(0x1000, true)
		g.PredictAndUpdate(0x1000, true)

		Expect(g.History()).To(Equal(uint64(0)))
	})

	It("should use the full history as index when N equals M1", func() {
		g := predictor.NewGshare(3, 3)

		// With history 0, the index is just the 3 PC bits above alignment.
		g.PredictAndUpdate(0x4, true) // index 1

		Expect(g.Tables()[0].Counters[1]).To(Equal(predictor.Counter(3)))
	})

	It("should learn an alternating pattern a bimodal counter cannot", func() {
		g := predictor.NewGshare(6, 4)
		b := predictor.NewBimodal(6)

		pc := uint64(0x1000)
		for i := 0; i < 200; i++ {
			taken := i%2 == 0
			g.PredictAndUpdate(pc, taken)
			b.PredictAndUpdate(pc, taken)
		}

		Expect(g.Stats().Correct).To(BeNumerically(">", b.Stats().Correct))
	})

	It("should restore the initial state on Reset", func() {
		g := predictor.NewGshare(4, 3)

		g.PredictAndUpdate(0x1000, true)
		g.PredictAndUpdate(0x1004, false)

		g.Reset()

		Expect(g.History()).To(Equal(uint64(0)))
		Expect(g.Stats().Predictions).To(Equal(uint64(0)))
		for _, c := range g.Tables()[0].Counters {
			Expect(c).To(Equal(predictor.Counter(2)))
		}
	})
})
