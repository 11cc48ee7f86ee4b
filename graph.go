package vispipe

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-logr/logr"
	"go.uber.org/multierr"
)

// Sentinel errors for builder failure cases.
var (
	// ErrAlreadyConnected reports a second connection to one destination.
	ErrAlreadyConnected = errors.New("destination already connected")
	// ErrMissingSource reports a destination left without a source at
	// render time.
	ErrMissingSource = errors.New("destination has no source")
	// ErrTypeMismatch reports incompatible payload types.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrUnsupportedType reports a payload kind outside a combinator's
	// supported set.
	ErrUnsupportedType = errors.New("unsupported payload type")
)

// Graph owns every node of a pipeline under construction and renders the
// whole structure into a Config.
//
// Graph-level I/O lives on a boundary pseudo-node with inverted roles: a
// graph input is a source from the perspective of the nodes inside (data
// flows out of the boundary into consumers), and a graph output is a
// destination. Getting this inversion backwards would silently swap
// producers and consumers in the rendered config, so it is confined to
// the In/Out/SideIn/SideOut accessors and the Build boundary pass.
//
// Graph is NOT safe for concurrent use.
type Graph struct {
	graphType string
	log       logr.Logger

	nodes      []*NodeBase
	generators []*PacketGenerator

	// boundary.out holds graph inputs, boundary.in graph outputs; same
	// inversion for side packets.
	boundary NodeBase
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the construction logger. The default discards.
func WithLogger(log logr.Logger) Option {
	return func(g *Graph) {
		g.log = log
	}
}

// WithType sets the graph type name, used when the config is registered as
// a subgraph of an enclosing composition.
func WithType(graphType string) Option {
	return func(g *Graph) {
		g.graphType = graphType
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		log: logr.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetType sets the graph type name, see WithType.
func (g *Graph) SetType(graphType string) {
	g.graphType = graphType
}

// AddNode adds a generic node of the given calculator type and returns it.
// The returned node is owned by the graph and valid for its lifetime.
// Calculator names are not validated here; resolution happens in the
// execution engine's registry.
func (g *Graph) AddNode(calculator string) *NodeBase {
	n := &NodeBase{calculator: calculator}
	g.nodes = append(g.nodes, n)
	g.log.V(1).Info("add node", "calculator", calculator, "index", len(g.nodes)-1)
	return n
}

// AddPacketGenerator adds a legacy packet-generator node and returns it.
func (g *Graph) AddPacketGenerator(generatorType string) *PacketGenerator {
	p := &PacketGenerator{generatorType: generatorType}
	g.generators = append(g.generators, p)
	g.log.V(1).Info("add packet generator", "type", generatorType, "index", len(g.generators)-1)
	return p
}

// In returns the graph input streams under tag. Inside the graph these are
// sources feeding consumer nodes.
func (g *Graph) In(tag string) MultiSource[AnyT] {
	return MultiSource[AnyT]{m: &g.boundary.out, tag: tag}
}

// Out returns the graph output streams under tag. Inside the graph these
// are destinations fed by producer nodes.
func (g *Graph) Out(tag string) MultiDestination[AnyT] {
	return MultiDestination[AnyT]{m: &g.boundary.in, tag: tag}
}

// SideIn returns the graph input side packets under tag.
func (g *Graph) SideIn(tag string) MultiSidePacket[AnyT] {
	return MultiSidePacket[AnyT]{m: &g.boundary.sideOut, tag: tag}
}

// SideOut returns the graph output side packets under tag.
func (g *Graph) SideOut(tag string) MultiSideDestination[AnyT] {
	return MultiSideDestination[AnyT]{m: &g.boundary.sideIn, tag: tag}
}

// GraphIn returns the graph input at (tag, 0), typed as T.
func GraphIn[T any](g *Graph, tag string) Stream[T] {
	return Cast[T](g.In(tag).At(0))
}

// GraphOut returns the graph output at (tag, 0), typed as T.
func GraphOut[T any](g *Graph, tag string) Destination[T] {
	return CastDestination[T](g.Out(tag).At(0))
}

// GraphSideIn returns the graph side input at (tag, 0), typed as T.
func GraphSideIn[T any](g *Graph, tag string) SidePacket[T] {
	return CastSide[T](g.SideIn(tag).At(0))
}

// GraphSideOut returns the graph side output at (tag, 0), typed as T.
func GraphSideOut[T any](g *Graph, tag string) SideDestination[T] {
	return CastSideDestination[T](g.SideOut(tag).At(0))
}

// Build renders the graph into its serializable configuration. The graph
// must be fully wired: any destination without a source fails the build,
// with every finding combined into the returned error. Build does not
// mutate topology, but it does assign generated names to unnamed sources;
// calling it twice yields the same config.
func (g *Graph) Build() (*Config, error) {
	g.assignNames()

	cfg := &Config{Type: g.graphType}
	var errs error

	// Boundary node, rendered inverted: its outputs are the graph's
	// inputs and vice versa.
	g.boundary.out.visit(func(tag string, index, count int, s *SourceBase) {
		cfg.InputStream = append(cfg.InputStream, taggedName(tag, index, count, s.name))
	})
	g.boundary.in.visit(func(tag string, index, count int, d *DestinationBase) {
		if d.source == nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: graph output %s", ErrMissingSource, tagIndexName(tag, index, count)))
			return
		}
		cfg.OutputStream = append(cfg.OutputStream, taggedName(tag, index, count, d.source.name))
	})
	g.boundary.sideOut.visit(func(tag string, index, count int, s *SourceBase) {
		cfg.InputSidePacket = append(cfg.InputSidePacket, taggedName(tag, index, count, s.name))
	})
	g.boundary.sideIn.visit(func(tag string, index, count int, d *DestinationBase) {
		if d.source == nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: graph side output %s", ErrMissingSource, tagIndexName(tag, index, count)))
			return
		}
		cfg.OutputSidePacket = append(cfg.OutputSidePacket, taggedName(tag, index, count, d.source.name))
	})

	for i, n := range g.nodes {
		nc, err := renderNode(i, n)
		errs = multierr.Append(errs, err)
		cfg.Node = append(cfg.Node, nc)
	}
	for i, p := range g.generators {
		pc, err := renderGenerator(i, p)
		errs = multierr.Append(errs, err)
		cfg.PacketGenerator = append(cfg.PacketGenerator, pc)
	}

	if errs != nil {
		return nil, errs
	}

	g.log.V(1).Info("graph built", "nodes", len(cfg.Node), "generators", len(cfg.PacketGenerator))
	return cfg, nil
}

// MustBuild is like Build but panics on error.
func (g *Graph) MustBuild() *Config {
	cfg, err := g.Build()
	if err != nil {
		panic(err)
	}
	return cfg
}

// assignNames gives every still-unnamed source a generated name from one
// counter shared across the whole pass: boundary first, then nodes in
// insertion order, then packet generators, streams before side packets
// within each node. The traversal order is part of the config contract.
func (g *Graph) assignNames() {
	counter := 0
	assign := func(prefix string) func(tag string, index, count int, s *SourceBase) {
		return func(_ string, _, _ int, s *SourceBase) {
			if s.name == "" {
				s.name = prefix + strconv.Itoa(counter)
				counter++
			}
		}
	}

	g.boundary.out.visit(assign("__stream_"))
	g.boundary.sideOut.visit(assign("__side_packet_"))
	for _, n := range g.nodes {
		n.out.visit(assign("__stream_"))
		n.sideOut.visit(assign("__side_packet_"))
	}
	for _, p := range g.generators {
		p.sideOut.visit(assign("__side_packet_"))
	}
}

func renderNode(index int, n *NodeBase) (NodeConfig, error) {
	nc := NodeConfig{Calculator: n.calculator}
	var errs error

	n.in.visit(func(tag string, i, count int, d *DestinationBase) {
		if d.source == nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: node %d (%s) input %s",
				ErrMissingSource, index, n.calculator, tagIndexName(tag, i, count)))
			return
		}
		nc.InputStream = append(nc.InputStream, taggedName(tag, i, count, d.source.name))
		if d.backEdge {
			nc.InputStreamInfo = append(nc.InputStreamInfo, StreamInfo{
				TagIndex: tagIndexName(tag, i, count),
				BackEdge: true,
			})
		}
	})
	n.out.visit(func(tag string, i, count int, s *SourceBase) {
		nc.OutputStream = append(nc.OutputStream, taggedName(tag, i, count, s.name))
	})
	n.sideIn.visit(func(tag string, i, count int, d *DestinationBase) {
		if d.source == nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: node %d (%s) side input %s",
				ErrMissingSource, index, n.calculator, tagIndexName(tag, i, count)))
			return
		}
		nc.InputSidePacket = append(nc.InputSidePacket, taggedName(tag, i, count, d.source.name))
	})
	n.sideOut.visit(func(tag string, i, count int, s *SourceBase) {
		nc.OutputSidePacket = append(nc.OutputSidePacket, taggedName(tag, i, count, s.name))
	})

	nc.Options = n.options
	return nc, errs
}

func renderGenerator(index int, p *PacketGenerator) (PacketGeneratorConfig, error) {
	pc := PacketGeneratorConfig{PacketGenerator: p.generatorType}
	var errs error

	p.sideIn.visit(func(tag string, i, count int, d *DestinationBase) {
		if d.source == nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: packet generator %d (%s) side input %s",
				ErrMissingSource, index, p.generatorType, tagIndexName(tag, i, count)))
			return
		}
		pc.InputSidePacket = append(pc.InputSidePacket, taggedName(tag, i, count, d.source.name))
	})
	p.sideOut.visit(func(tag string, i, count int, s *SourceBase) {
		pc.OutputSidePacket = append(pc.OutputSidePacket, taggedName(tag, i, count, s.name))
	})

	pc.Options = p.options
	return pc, errs
}

// taggedName renders one endpoint reference: "name" for the empty tag,
// "TAG:name" when the tag has a single entry, "TAG:index:name" otherwise.
func taggedName(tag string, index, count int, name string) string {
	if tag == "" {
		return name
	}
	if count <= 1 {
		return tag + ":" + name
	}
	return tag + ":" + strconv.Itoa(index) + ":" + name
}

// tagIndexName identifies a port without a stream name, for diagnostics and
// input_stream_info entries.
func tagIndexName(tag string, index, count int) string {
	if tag == "" {
		return strconv.Itoa(index)
	}
	if count <= 1 {
		return tag
	}
	return tag + ":" + strconv.Itoa(index)
}
