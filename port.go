package vispipe

import "fmt"

// SourceBase is the untyped producer side of an edge: a stream or side
// packet emitted by a node (or fed into the graph from outside). A source
// may fan out to any number of destinations.
type SourceBase struct {
	name      string
	consumers []*DestinationBase
}

// Name returns the assigned stream name, or "" if the source has not been
// named yet. Unnamed sources receive a generated name during Build.
func (s *SourceBase) Name() string { return s.name }

// DestinationBase is the untyped consumer side of an edge. At most one
// source may ever feed a destination.
type DestinationBase struct {
	source   *SourceBase
	backEdge bool
}

// Source returns the source feeding this destination, or nil if unconnected.
func (d *DestinationBase) Source() *SourceBase { return d.source }

// connect binds dst to src. Connecting a destination twice is a usage error
// and panics; the graph model has no recovery path for a miswired builder.
func connect(src *SourceBase, dst *DestinationBase) {
	if dst.source != nil {
		panic(fmt.Errorf("%w: already fed by %q", ErrAlreadyConnected, dst.source.name))
	}
	dst.source = src
	src.consumers = append(src.consumers, dst)
}

// AnyT is the payload marker of generic nodes whose contract is not
// statically known. Connections to or from AnyT ports go through Cast,
// which deliberately disables the compile-time payload check.
type AnyT struct{}

// Source is a typed, cheaply-copyable view over a SourceBase. The type
// parameter exists only at compile time; it is erased in the underlying
// model. Handles must not outlive the Graph that owns their storage.
type Source[T any] struct {
	base *SourceBase
}

// Stream is the caller-facing name for a typed stream handle.
type Stream[T any] = Source[T]

// ConnectTo feeds d from s and returns s to allow chaining.
func (s Source[T]) ConnectTo(d Destination[T]) Source[T] {
	connect(s.base, d.base)
	return s
}

// SetName assigns the rendered stream name. Intended to be called at most
// once, before Build; a later SetName simply overwrites.
func (s Source[T]) SetName(name string) Source[T] {
	s.base.name = name
	return s
}

// Base exposes the untyped endpoint, mainly for diagnostics.
func (s Source[T]) Base() *SourceBase { return s.base }

// Destination is a typed view over a DestinationBase.
type Destination[T any] struct {
	base *DestinationBase
}

// AsBackEdge marks the incoming edge as a feedback edge, rendered as
// input_stream_info with back_edge: true. Back edges are how loops
// (e.g. the loopback combinator) avoid deadlocking the scheduler.
func (d Destination[T]) AsBackEdge() Destination[T] {
	d.base.backEdge = true
	return d
}

// Base exposes the untyped endpoint, mainly for diagnostics.
func (d Destination[T]) Base() *DestinationBase { return d.base }

// SidePacket is a typed view over a side-packet source. Side packets carry
// one value for the whole graph run instead of a timestamped stream.
type SidePacket[T any] struct {
	base *SourceBase
}

// ConnectTo feeds d from p and returns p to allow chaining.
func (p SidePacket[T]) ConnectTo(d SideDestination[T]) SidePacket[T] {
	connect(p.base, d.base)
	return p
}

// SetName assigns the rendered side-packet name.
func (p SidePacket[T]) SetName(name string) SidePacket[T] {
	p.base.name = name
	return p
}

// Base exposes the untyped endpoint, mainly for diagnostics.
func (p SidePacket[T]) Base() *SourceBase { return p.base }

// SideDestination is a typed view over a side-packet destination.
type SideDestination[T any] struct {
	base *DestinationBase
}

// Base exposes the untyped endpoint, mainly for diagnostics.
func (d SideDestination[T]) Base() *DestinationBase { return d.base }

// Cast reinterprets a stream handle as carrying payload type T. The
// underlying endpoint is untyped, so this is free; it exists for crossing
// between generic (AnyT) ports and typed combinator signatures.
func Cast[T, F any](s Source[F]) Source[T] {
	return Source[T]{base: s.base}
}

// CastDestination is Cast for destinations.
func CastDestination[T, F any](d Destination[F]) Destination[T] {
	return Destination[T]{base: d.base}
}

// CastSide is Cast for side packets.
func CastSide[T, F any](p SidePacket[F]) SidePacket[T] {
	return SidePacket[T]{base: p.base}
}

// CastSideDestination is Cast for side-packet destinations.
func CastSideDestination[T, F any](d SideDestination[F]) SideDestination[T] {
	return SideDestination[T]{base: d.base}
}

// MultiSource is a live view over every source sharing one tag. Ports
// materialize lazily: At grows the underlying entry as needed, even if the
// port ends up unconnected. Single-port operations act on index 0.
type MultiSource[T any] struct {
	m   *tagIndexMap[SourceBase]
	tag string
}

// At returns the source at index, growing the entry if needed.
func (m MultiSource[T]) At(index int) Source[T] {
	return Source[T]{base: m.m.getOrGrow(m.tag, index)}
}

// ConnectTo connects index 0.
func (m MultiSource[T]) ConnectTo(d Destination[T]) Source[T] {
	return m.At(0).ConnectTo(d)
}

// SetName names index 0.
func (m MultiSource[T]) SetName(name string) Source[T] {
	return m.At(0).SetName(name)
}

// MultiDestination is the destination counterpart of MultiSource.
type MultiDestination[T any] struct {
	m   *tagIndexMap[DestinationBase]
	tag string
}

// At returns the destination at index, growing the entry if needed.
func (m MultiDestination[T]) At(index int) Destination[T] {
	return Destination[T]{base: m.m.getOrGrow(m.tag, index)}
}

// MultiSidePacket is the side-packet counterpart of MultiSource.
type MultiSidePacket[T any] struct {
	m   *tagIndexMap[SourceBase]
	tag string
}

// At returns the side packet at index, growing the entry if needed.
func (m MultiSidePacket[T]) At(index int) SidePacket[T] {
	return SidePacket[T]{base: m.m.getOrGrow(m.tag, index)}
}

// ConnectTo connects index 0.
func (m MultiSidePacket[T]) ConnectTo(d SideDestination[T]) SidePacket[T] {
	return m.At(0).ConnectTo(d)
}

// SetName names index 0.
func (m MultiSidePacket[T]) SetName(name string) SidePacket[T] {
	return m.At(0).SetName(name)
}

// MultiSideDestination is the side-packet counterpart of MultiDestination.
type MultiSideDestination[T any] struct {
	m   *tagIndexMap[DestinationBase]
	tag string
}

// At returns the side destination at index, growing the entry if needed.
func (m MultiSideDestination[T]) At(index int) SideDestination[T] {
	return SideDestination[T]{base: m.m.getOrGrow(m.tag, index)}
}
