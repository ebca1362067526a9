// SPDX-License-Identifier: MIT

package algo

import "testing"

func TestBFSPathGraphDistances(t *testing.T) {
	// 0 - 1 - 2 - 3 - 4, stored as a plain forward edge list (as the
	// vertex layout would emit it for these source ids in order).
	g := sliceGraph{{0, 1}, {1, 2}, {2, 3}, {3, 4}}

	result, err := BFS(g, 5, BFSOptions{})
	if err != nil {
		t.Fatalf("BFS: %v", err)
	}

	want := []uint16{0, 1, 2, 3, 4}
	for i, w := range want {
		if result.Label[i] != w {
			t.Fatalf("label = %v, want %v", result.Label, want)
		}
	}
}

func TestBFSDisconnectedNodeStaysZero(t *testing.T) {
	// Node 5 is unreachable from root 0; the driver's convention forces
	// nodes outside 0's component back to label 0 rather than leaving the
	// Unvisited sentinel, so it can be told apart only by component
	// membership, not by the label value.
	g := sliceGraph{{0, 1}, {1, 2}}

	result, err := BFS(g, 6, BFSOptions{})
	if err != nil {
		t.Fatalf("BFS: %v", err)
	}

	if result.Label[5] != 0 {
		t.Fatalf("label[5] = %d, want 0 for a node outside 0's component", result.Label[5])
	}
	if result.Label[0] != 0 || result.Label[1] != 1 || result.Label[2] != 2 {
		t.Fatalf("unexpected labels for connected nodes: %v", result.Label)
	}
}

func TestBFSSmallResidualCapacityStillConverges(t *testing.T) {
	g := sliceGraph{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}}

	result, err := BFS(g, 7, BFSOptions{ResidualCapacity: 2})
	if err != nil {
		t.Fatalf("BFS: %v", err)
	}

	want := []uint16{0, 1, 2, 3, 4, 5, 6}
	for i, w := range want {
		if result.Label[i] != w {
			t.Fatalf("label = %v, want %v", result.Label, want)
		}
	}
}
