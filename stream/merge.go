package stream

import "github.com/vispipe/vispipe"

// Merge emits, for every timestamp where either input has a packet, the
// value of a if present and the value of b otherwise. Both inputs must
// carry the same payload type.
func Merge[T any](a, b vispipe.Stream[T], g *vispipe.Graph) vispipe.Stream[T] {
	node := g.AddNode("MergeCalculator")
	a.ConnectTo(vispipe.InAt(node, vispipe.InputTag[T](""), 0))
	b.ConnectTo(vispipe.InAt(node, vispipe.InputTag[T](""), 1))
	return vispipe.Out(node, vispipe.OutputTag[T](""))
}
