// Package predictor provides trace-driven branch direction predictors.
//
// Three schemes are implemented: bimodal (PC-indexed counter table), gshare
// (PC XOR global-history indexed table), and hybrid (bimodal + gshare with a
// chooser table that arbitrates between them). All three share the same
// 2-bit saturating counter primitive and the same predict-then-update cycle:
// one call per trace event that returns whether the prediction was correct
// and mutates the predictor state as a side effect.
package predictor

// Counter is a 2-bit saturating counter.
// States: 0=Strongly Not Taken, 1=Weakly Not Taken,
//         2=Weakly Taken, 3=Strongly Taken
type Counter uint8

const (
	// CounterMin is the strongly-not-taken floor.
	CounterMin Counter = 0
	// CounterMax is the strongly-taken ceiling.
	CounterMax Counter = 3
	// WeaklyNotTaken is the initial value of chooser tables.
	WeaklyNotTaken Counter = 1
	// WeaklyTaken is the initial value of prediction tables.
	WeaklyTaken Counter = 2
)

// Increment moves the counter one state toward strongly taken, saturating at 3.
func (c *Counter) Increment() {
	if *c < CounterMax {
		*c++
	}
}

// Decrement moves the counter one state toward strongly not taken, saturating at 0.
func (c *Counter) Decrement() {
	if *c > CounterMin {
		*c--
	}
}

// Taken reports the counter's prediction: true for values 2 and 3.
// Chooser tables reuse the same threshold to select between predictors.
func (c Counter) Taken() bool {
	return c >= WeaklyTaken
}

// Update trains the counter toward the actual outcome.
func (c *Counter) Update(taken bool) {
	if taken {
		c.Increment()
	} else {
		c.Decrement()
	}
}

// Table is a fixed-size array of saturating counters. The size is always a
// power of two, fixed at construction.
type Table []Counter

// NewTable creates a table of 2^width counters, all set to init.
// width 0 is valid and yields a single-entry table.
func NewTable(width uint32, init Counter) Table {
	t := make(Table, 1<<width)
	for i := range t {
		t[i] = init
	}
	return t
}

// Fill resets every counter in the table to init.
func (t Table) Fill(init Counter) {
	for i := range t {
		t[i] = init
	}
}

// indexMask returns the mask selecting a valid index into the table.
func (t Table) indexMask() uint64 {
	return uint64(len(t) - 1)
}
