package projection

// cashFlowStream is the realized cash-flow history of a run, index 0 being the
// initial outlay. The scratch buffer builds hypothetical-sale streams without
// touching history.
type cashFlowStream struct {
	history []float64
	scratch []float64
}

func newCashFlowStream(outlay float64, periods int) *cashFlowStream {
	history := make([]float64, 1, periods+1)
	history[0] = outlay
	return &cashFlowStream{
		history: history,
		scratch: make([]float64, 0, periods+2),
	}
}

func (c *cashFlowStream) append(cf float64) {
	c.history = append(c.history, cf)
}

// withTerminal returns history plus one terminal element. The slice is only
// valid until the next call.
func (c *cashFlowStream) withTerminal(terminal float64) []float64 {
	c.scratch = append(c.scratch[:0], c.history...)
	return append(c.scratch, terminal)
}

func (c *cashFlowStream) size() int {
	return len(c.history)
}
