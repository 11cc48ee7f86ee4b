// Package vispipe provides a typed builder for perception-pipeline graphs.
//
// # Overview
//
// A pipeline is a graph of named calculator nodes exchanging timestamped
// packets over streams and side packets. vispipe separates build-time graph
// construction from execution through a two-phase architecture:
//
// 1. **Build Phase**: Assemble a graph with typed Stream handles and
// combinator functions (see the stream package)
// 2. **Render Phase**: Build() produces an immutable Config that a
// downstream execution engine consumes
//
// The builder never runs calculators. It only records topology, names
// streams deterministically, and validates that the graph is fully wired.
//
// # Architecture
//
// The builder uses type erasure with a typed generic surface:
//
//   - **Graph**: owns all nodes plus a boundary pseudo-node whose ports
//     represent graph-level inputs and outputs (with inverted roles)
//   - **NodeBase**: one calculator instance; four tag-indexed port
//     collections and an options slot
//   - **Source/Destination**: untyped endpoints; a destination accepts at
//     most one source, a source fans out to any number of destinations
//   - **Stream[T]**: zero-overhead phantom-typed view over an endpoint;
//     the type parameter never affects the runtime representation
//
// # Basic Usage
//
//	g := vispipe.New()
//
//	a := vispipe.GraphIn[formats.Image](g, "INPUT_A")
//	b := vispipe.GraphIn[formats.Image](g, "INPUT_B")
//
//	merged := stream.Merge(a, b, g)
//	merged.ConnectTo(vispipe.GraphOut[formats.Image](g, "OUTPUT"))
//
//	cfg := g.MustBuild()
//
// # Naming
//
// Every stream the caller never named receives a generated name
// ("__stream_<n>" or "__side_packet_<n>") from a single counter shared
// across the whole graph, assigned boundary-first and then in node
// insertion order. Naming is a pure function of topology and insertion
// order, never of map iteration order.
//
// # Error Handling
//
// Misusing the DSL (connecting a destination twice, requesting an
// unsupported payload kind, mixing options types on one node) panics
// immediately: these are programmer errors, not runtime conditions.
// Structural validation failures, such as a destination left without a
// source, are reported by Build() as an error combining every finding.
// Sentinel errors (ErrAlreadyConnected, ErrMissingSource, ErrTypeMismatch,
// ErrUnsupportedType) can be checked with errors.Is.
//
// # Thread Safety
//
// IMPORTANT: Graph is NOT safe for concurrent use. All construction calls
// must come from a single goroutine. The rendered Config is immutable and
// safe to share.
package vispipe
