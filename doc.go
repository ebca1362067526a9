// SPDX-License-Identifier: MIT

// Package cost implements the graph-iterator core of the COST
// single-machine graph-processing approach: edge-list graphs scanned at
// close to sequential-I/O or memory-bandwidth speed from any of three
// on-disk layouts, via one abstraction.
//
// A graph is, abstractly, the lazy sequence of edges produced by one
// scan: each physical scan visits every stored edge exactly once, in an
// order defined by its layout. EdgeMapper is that abstraction; its three
// layout implementations in this package (VertexMapper, HilbertMapper,
// DeltaMapper) share the contract but differ in the file layout and
// therefore in scan order. SliceMapper is a fourth implementation that
// decodes the DeltaMapper format from an in-memory byte slice. Package algo drives all three with the same
// union-find, label-propagation, PageRank, and BFS passes.
package cost
