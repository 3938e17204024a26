// Package kruskalviz is a step-through engine for Kruskal's minimum spanning
// tree algorithm, built for visualizers and teaching tools.
//
// A UI loads a graph, then drives the run one edge at a time (forward, back,
// reset, seek) or lets a timer play it. After every command it reads a
// Snapshot: the cursor, the edge under it, each edge's verdict, the accepted
// weight and the current connected components.
//
// Packages, leaf first:
//
//	core/      Node, Edge, Graph, EdgeState; SortEdges and Validate
//	dsu/       disjoint-set union with union by rank and path compression
//	kruskal/   the Engine state machine, invariant Verify, batch Solve
//	playback/  timer-driven Scheduler and the Controller command surface
//	metrics/   Prometheus collector observing engine and scheduler
//	graphio/   YAML/JSON graph provider and snapshot encoder
//	config/    user-facing settings and their clamps
//	cmd/kruskalviz/  command-line host
//
// Quick example:
//
//	    0───1      w(0,1)=1
//	     \  │      w(1,2)=2
//	      \ │      w(0,2)=5
//	        2
//
//	g := core.NewGraph(3,
//		core.Edge{U: 0, V: 1, W: 1},
//		core.Edge{U: 1, V: 2, W: 2},
//		core.Edge{U: 0, V: 2, W: 5},
//	)
//	e := kruskal.New()
//	_ = e.Load(g)
//	e.StepForward() // 0–1 accepted, total 1
//	e.StepForward() // 1–2 accepted, total 3
//	e.StepForward() // 0–2 rejected (cycle), run complete
//	e.StepBackward() // 0–2 pending again
//
//	go get github.com/katalvlaran/kruskalviz
package kruskalviz
