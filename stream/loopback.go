package stream

import "github.com/vispipe/vispipe"

// GetLoopbackData returns a stream that, for every packet on tick, emits
// the value most recently fed into the loop, plus a setter that wires the
// looped-back stream. At the first tick no value has been set yet, so the
// loopback output carries no packet.
//
// The setter must be called exactly once. A second call is a
// double-connection and panics; never calling it leaves the LOOP input
// unconnected, which Build reports as ErrMissingSource.
func GetLoopbackData[DataT, TickT any](tick vispipe.Stream[TickT], g *vispipe.Graph) (vispipe.Stream[DataT], func(vispipe.Stream[DataT])) {
	node := g.AddNode("PreviousLoopbackCalculator")
	tick.ConnectTo(vispipe.In(node, vispipe.InputTag[TickT]("MAIN")))

	// The loop input closes a cycle; marking it a back edge tells the
	// scheduler not to wait on it.
	loop := vispipe.In(node, vispipe.InputTag[DataT]("LOOP")).AsBackEdge()

	prev := vispipe.Out(node, vispipe.OutputTag[DataT]("PREV_LOOP"))
	return prev, func(s vispipe.Stream[DataT]) {
		s.ConnectTo(loop)
	}
}
