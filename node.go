package vispipe

import "fmt"

// NodeBase is one calculator instance: four tag-indexed port collections
// plus an options slot. Node inputs are destinations (they consume) and
// node outputs are sources (they produce).
//
// Port accessors materialize entries lazily, so calling one is not free of
// observable effect: a requested but unconnected input still exists at
// render time and is reported as a wiring error.
type NodeBase struct {
	calculator string

	in      tagIndexMap[DestinationBase]
	out     tagIndexMap[SourceBase]
	sideIn  tagIndexMap[DestinationBase]
	sideOut tagIndexMap[SourceBase]

	options any
}

// Calculator returns the calculator type name this node was created with.
func (n *NodeBase) Calculator() string { return n.calculator }

// In returns the input streams under tag.
func (n *NodeBase) In(tag string) MultiDestination[AnyT] {
	return MultiDestination[AnyT]{m: &n.in, tag: tag}
}

// Out returns the output streams under tag.
func (n *NodeBase) Out(tag string) MultiSource[AnyT] {
	return MultiSource[AnyT]{m: &n.out, tag: tag}
}

// SideIn returns the input side packets under tag.
func (n *NodeBase) SideIn(tag string) MultiSideDestination[AnyT] {
	return MultiSideDestination[AnyT]{m: &n.sideIn, tag: tag}
}

// SideOut returns the output side packets under tag.
func (n *NodeBase) SideOut(tag string) MultiSidePacket[AnyT] {
	return MultiSidePacket[AnyT]{m: &n.sideOut, tag: tag}
}

func (n *NodeBase) optionsSlot() *any    { return &n.options }
func (n *NodeBase) optionsOwner() string { return n.calculator }

// PacketGenerator is a legacy side-packet-only node. It participates in the
// naming pass and rendering like a node, but carries no streams.
type PacketGenerator struct {
	generatorType string

	sideIn  tagIndexMap[DestinationBase]
	sideOut tagIndexMap[SourceBase]

	options any
}

// GeneratorType returns the packet-generator type name.
func (p *PacketGenerator) GeneratorType() string { return p.generatorType }

// SideIn returns the input side packets under tag.
func (p *PacketGenerator) SideIn(tag string) MultiSideDestination[AnyT] {
	return MultiSideDestination[AnyT]{m: &p.sideIn, tag: tag}
}

// SideOut returns the output side packets under tag.
func (p *PacketGenerator) SideOut(tag string) MultiSidePacket[AnyT] {
	return MultiSidePacket[AnyT]{m: &p.sideOut, tag: tag}
}

func (p *PacketGenerator) optionsSlot() *any    { return &p.options }
func (p *PacketGenerator) optionsOwner() string { return p.generatorType }

// SidePorts is implemented by everything carrying side-packet collections
// (NodeBase and PacketGenerator), so the typed side-port accessors work on
// both. The interface is sealed; no other implementations exist.
type SidePorts interface {
	sideInMap() *tagIndexMap[DestinationBase]
	sideOutMap() *tagIndexMap[SourceBase]
}

func (n *NodeBase) sideInMap() *tagIndexMap[DestinationBase]        { return &n.sideIn }
func (n *NodeBase) sideOutMap() *tagIndexMap[SourceBase]            { return &n.sideOut }
func (p *PacketGenerator) sideInMap() *tagIndexMap[DestinationBase] { return &p.sideIn }
func (p *PacketGenerator) sideOutMap() *tagIndexMap[SourceBase]     { return &p.sideOut }

// OptionsCarrier is implemented by NodeBase and PacketGenerator. The
// interface is sealed; no other implementations exist.
type OptionsCarrier interface {
	optionsSlot() *any
	optionsOwner() string
}

// Options returns the options message of type O for the node, allocating it
// on first access. A node carries at most one options message; requesting a
// different type than the one already allocated is a programmer error and
// panics with ErrTypeMismatch.
func Options[O any](n OptionsCarrier) *O {
	slot := n.optionsSlot()
	if *slot == nil {
		*slot = new(O)
	}
	opts, ok := (*slot).(*O)
	if !ok {
		panic(fmt.Errorf("%w: %s already has options of type %T", ErrTypeMismatch, n.optionsOwner(), *slot))
	}
	return opts
}

// InputTag statically binds a tag string to the payload type carried on
// that port. Methods cannot take type parameters, so the contract-checked
// accessors are package-level functions taking the typed tag:
//
//	var inImage = vispipe.InputTag[formats.Image]("IMAGE")
//	img := vispipe.In(node, inImage)
type InputTag[T any] string

// OutputTag is InputTag for output streams.
type OutputTag[T any] string

// SideInputTag is InputTag for input side packets.
type SideInputTag[T any] string

// SideOutputTag is InputTag for output side packets.
type SideOutputTag[T any] string

// In returns the typed input port at (tag, 0).
func In[T any](n *NodeBase, tag InputTag[T]) Destination[T] {
	return InAt(n, tag, 0)
}

// InAt returns the typed input port at (tag, index).
func InAt[T any](n *NodeBase, tag InputTag[T], index int) Destination[T] {
	return Destination[T]{base: n.in.getOrGrow(string(tag), index)}
}

// Out returns the typed output port at (tag, 0).
func Out[T any](n *NodeBase, tag OutputTag[T]) Source[T] {
	return OutAt(n, tag, 0)
}

// OutAt returns the typed output port at (tag, index).
func OutAt[T any](n *NodeBase, tag OutputTag[T], index int) Source[T] {
	return Source[T]{base: n.out.getOrGrow(string(tag), index)}
}

// SideIn returns the typed side-input port at (tag, 0).
func SideIn[T any](n SidePorts, tag SideInputTag[T]) SideDestination[T] {
	return SideInAt(n, tag, 0)
}

// SideInAt returns the typed side-input port at (tag, index).
func SideInAt[T any](n SidePorts, tag SideInputTag[T], index int) SideDestination[T] {
	return SideDestination[T]{base: n.sideInMap().getOrGrow(string(tag), index)}
}

// SideOut returns the typed side-output port at (tag, 0).
func SideOut[T any](n SidePorts, tag SideOutputTag[T]) SidePacket[T] {
	return SideOutAt(n, tag, 0)
}

// SideOutAt returns the typed side-output port at (tag, index).
func SideOutAt[T any](n SidePorts, tag SideOutputTag[T], index int) SidePacket[T] {
	return SidePacket[T]{base: n.sideOutMap().getOrGrow(string(tag), index)}
}
