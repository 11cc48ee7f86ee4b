package stream

import "github.com/vispipe/vispipe"

// IsPresent emits, for every processed timestamp, whether s carried a
// packet at that timestamp. The value itself is never inspected.
func IsPresent[T any](s vispipe.Stream[T], g *vispipe.Graph) vispipe.Stream[bool] {
	node := g.AddNode("PacketPresenceCalculator")
	s.ConnectTo(vispipe.In(node, vispipe.InputTag[T]("PACKET")))
	return vispipe.Out(node, vispipe.OutputTag[bool]("PRESENCE"))
}
