// SPDX-License-Identifier: MIT

package cost

// EdgeMapper is the single capability the edge-iterator stack exposes to
// graph algorithms: scan every stored edge exactly once, in the order
// defined by the concrete layout, invoking handler per edge.
//
// Implementations do not allocate per edge, are not safe for concurrent
// use (the core is single-threaded and synchronous, spec.md §5), and are
// restartable: a second call to Scan on the same mapper yields the
// identical sequence.
//
// Per spec.md §9, polymorphism here is a one-method capability interface
// rather than a marker/variant type. handler is a plain func value: the
// algorithm drivers in package algo call Scan through an interface and pass
// a closure, so each edge costs an indirect call. Scan is not generic over
// the handler type, and the handler is not monomorphized per driver.
type EdgeMapper interface {
	Scan(handler func(src, dst uint32)) error
}
