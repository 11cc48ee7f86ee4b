package stream

import "github.com/vispipe/vispipe"

// GateOptions mirrors GateCalculator's options.
type GateOptions struct {
	EmptyPacketsAsAllow *bool `yaml:"empty_packets_as_allow,omitempty"`
}

// Gate routes any number of streams through one gate node governed by a
// single boolean condition. Each GateStream call appends another
// input/output pair at the next index.
type Gate struct {
	node *vispipe.NodeBase
	next int
}

// AllowGate builds a gate that passes packets while condition is true.
func AllowGate(condition vispipe.Stream[bool], g *vispipe.Graph) *Gate {
	node := g.AddNode("GateCalculator")
	condition.ConnectTo(vispipe.In(node, vispipe.InputTag[bool]("ALLOW")))
	return &Gate{node: node}
}

// AllowSideGate is AllowGate with a side-packet condition.
func AllowSideGate(condition vispipe.SidePacket[bool], g *vispipe.Graph) *Gate {
	node := g.AddNode("GateCalculator")
	condition.ConnectTo(vispipe.SideIn(node, vispipe.SideInputTag[bool]("ALLOW")))
	return &Gate{node: node}
}

// DisallowGate builds a gate that blocks packets while condition is true.
// A timestamp where the condition packet is absent counts as allowed, not
// blocked; task graphs depend on that default for missing-data handling.
func DisallowGate(condition vispipe.Stream[bool], g *vispipe.Graph) *Gate {
	node := g.AddNode("GateCalculator")
	allow := true
	vispipe.Options[GateOptions](node).EmptyPacketsAsAllow = &allow
	condition.ConnectTo(vispipe.In(node, vispipe.InputTag[bool]("DISALLOW")))
	return &Gate{node: node}
}

// DisallowSideGate is DisallowGate with a side-packet condition.
func DisallowSideGate(condition vispipe.SidePacket[bool], g *vispipe.Graph) *Gate {
	node := g.AddNode("GateCalculator")
	allow := true
	vispipe.Options[GateOptions](node).EmptyPacketsAsAllow = &allow
	condition.ConnectTo(vispipe.SideIn(node, vispipe.SideInputTag[bool]("DISALLOW")))
	return &Gate{node: node}
}

// GateStream routes one more stream through the gate, governed by the
// gate's condition.
func GateStream[T any](gate *Gate, in vispipe.Stream[T]) vispipe.Stream[T] {
	i := gate.next
	gate.next++
	in.ConnectTo(vispipe.InAt(gate.node, vispipe.InputTag[T](""), i))
	return vispipe.OutAt(gate.node, vispipe.OutputTag[T](""), i)
}

// AllowIf gates a single stream on condition being true.
func AllowIf[T any](in vispipe.Stream[T], condition vispipe.Stream[bool], g *vispipe.Graph) vispipe.Stream[T] {
	return GateStream(AllowGate(condition, g), in)
}

// DisallowIf blocks a single stream while condition is true.
func DisallowIf[T any](in vispipe.Stream[T], condition vispipe.Stream[bool], g *vispipe.Graph) vispipe.Stream[T] {
	return GateStream(DisallowGate(condition, g), in)
}
