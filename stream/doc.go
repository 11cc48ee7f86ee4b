// Package stream is the user-facing composition surface of the graph
// builder: small pure functions that take typed Stream handles and a
// *vispipe.Graph, add one or more calculator nodes, wire their ports and
// return new typed handles.
//
// Combinators never execute anything; they only mutate the graph under
// construction. Payload-kind dispatch (which concrete calculator handles a
// landmark list vs. a tensor vector) happens over a small closed set of
// supported types; passing anything outside the set is a programmer error
// and panics with vispipe.ErrUnsupportedType.
package stream
