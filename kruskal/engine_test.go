package kruskal_test

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/kruskalviz/core"
	"github.com/katalvlaran/kruskalviz/kruskal"
)

// buildTriangle returns nodes {0,1,2} with sorted edges (0,1,w=1), (1,2,w=2), (0,2,w=5).
// Its MST is {0–1, 1–2} with weight 3; the last edge closes a cycle.
func buildTriangle() core.Graph {
	return core.NewGraph(3,
		core.Edge{U: 0, V: 1, W: 1},
		core.Edge{U: 1, V: 2, W: 2},
		core.Edge{U: 0, V: 2, W: 5},
	)
}

// buildRandomGraph builds a G(n,p) graph with integer weights in [1,20],
// seeded for reproducibility. Many equal weights exercise tie-breaking.
func buildRandomGraph(seed int64, n int, p float64) core.Graph {
	r := rand.New(rand.NewSource(seed))
	var edges []core.Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if r.Float64() <= p {
				edges = append(edges, core.Edge{U: i, V: j, W: float64(1 + r.Intn(20))})
			}
		}
	}

	return core.NewGraph(n, edges...)
}

// componentsOf counts connected components of the whole edge set by BFS.
func componentsOf(g core.Graph) int {
	adj := make([][]int, g.Order())
	for _, e := range g.Edges {
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}
	seen := make([]bool, g.Order())
	count := 0
	for s := range adj {
		if seen[s] {
			continue
		}
		count++
		queue := []int{s}
		seen[s] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, v := range adj[u] {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
	}

	return count
}

func newLoaded(t *testing.T, g core.Graph, opts ...kruskal.Option) *kruskal.Engine {
	t.Helper()
	e := kruskal.New(append([]kruskal.Option{kruskal.WithInvariantChecks()}, opts...)...)
	require.NoError(t, e.Load(g))

	return e
}

func TestEngine_IdlePreconditions(t *testing.T) {
	e := kruskal.New()
	assert.Equal(t, kruskal.Idle, e.Status())
	assert.False(t, e.Complete())
	assert.Empty(t, e.RunID())

	_, err := e.StepForward()
	assert.ErrorIs(t, err, kruskal.ErrNoGraph)
	_, err = e.StepBackward()
	assert.ErrorIs(t, err, kruskal.ErrNoGraph)
	assert.ErrorIs(t, e.Reset(), kruskal.ErrNoGraph)
	_, err = e.SeekTo(0)
	assert.ErrorIs(t, err, kruskal.ErrNoGraph)

	_, ok := e.Current()
	assert.False(t, ok)
	assert.Empty(t, e.Groups())
	assert.Empty(t, e.Components())
	assert.NoError(t, e.Verify())

	s := e.Snapshot()
	assert.Equal(t, kruskal.Idle, s.Status)
	assert.Nil(t, s.Current)
}

// TestScenario_Triangle walks the triangle forward and checks every intermediate state.
func TestScenario_Triangle(t *testing.T) {
	e := newLoaded(t, buildTriangle())
	require.Equal(t, kruskal.Running, e.Status())
	cur, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, 0, cur.ID)

	// Step 1: 0–1 accepted.
	st, err := e.StepForward()
	require.NoError(t, err)
	assert.True(t, st.Accepted())
	assert.Equal(t, kruskal.Forward, st.Direction)
	assert.Equal(t, 1, st.Cursor)
	assert.Equal(t, 1.0, e.TotalWeight())
	assert.Equal(t, [][]int{{0, 1}, {2}}, e.Components())

	// Step 2: 1–2 accepted.
	st, err = e.StepForward()
	require.NoError(t, err)
	assert.True(t, st.Accepted())
	assert.Equal(t, 3.0, e.TotalWeight())
	assert.Equal(t, [][]int{{0, 1, 2}}, e.Components())
	assert.False(t, st.Complete, "exhaustion policy keeps going after the tree spans")

	// Step 3: 0–2 rejected, run complete.
	st, err = e.StepForward()
	require.NoError(t, err)
	assert.False(t, st.Accepted())
	assert.Equal(t, core.Rejected, st.Edge.State)
	assert.True(t, st.Complete)
	assert.Equal(t, 3.0, e.TotalWeight())
	assert.Equal(t, 3, e.Cursor())
	assert.Equal(t, kruskal.Complete, e.Status())

	for id, want := range []core.EdgeState{core.Accepted, core.Accepted, core.Rejected} {
		got, ok := e.EdgeState(id)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok = e.EdgeState(3)
	assert.False(t, ok)
	_, ok = e.Current()
	assert.False(t, ok)
	considered, total := e.Considered()
	assert.Equal(t, 3, considered)
	assert.Equal(t, 3, total)
}

// TestScenario_RewindToStart rewinds a completed triangle back to the initial snapshot.
func TestScenario_RewindToStart(t *testing.T) {
	e := newLoaded(t, buildTriangle())
	initial := e.Snapshot()

	for i := 0; i < 3; i++ {
		_, err := e.StepForward()
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		st, err := e.StepBackward()
		require.NoError(t, err)
		assert.Equal(t, kruskal.Backward, st.Direction)
		assert.Equal(t, core.Pending, st.Edge.State)
	}

	assert.Equal(t, initial, e.Snapshot())
	for _, edge := range e.Graph().Edges {
		assert.Equal(t, core.Pending, edge.State)
	}
	assert.Zero(t, e.TotalWeight())

	_, err := e.StepBackward()
	assert.ErrorIs(t, err, kruskal.ErrAtStart)
	assert.Equal(t, initial, e.Snapshot(), "failed StepBackward must not change state")
}

// TestStepForwardAtComplete_NoEffect pins the precondition policy: explicit error, no mutation.
func TestStepForwardAtComplete_NoEffect(t *testing.T) {
	e := newLoaded(t, buildTriangle())
	_, err := e.SeekTo(3)
	require.NoError(t, err)
	done := e.Snapshot()

	for i := 0; i < 2; i++ {
		_, err = e.StepForward()
		assert.ErrorIs(t, err, kruskal.ErrComplete)
		assert.Equal(t, done, e.Snapshot())
	}
}

// TestRoundTrip checks that StepForward followed by StepBackward restores the
// exact snapshot at every cursor position of several random graphs.
func TestRoundTrip(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := buildRandomGraph(seed, 12, 0.4)
		e := newLoaded(t, g)
		for !e.Complete() {
			before := e.Snapshot()
			_, err := e.StepForward()
			require.NoError(t, err)
			after := e.Snapshot()

			_, err = e.StepBackward()
			require.NoError(t, err)
			require.Equal(t, before, e.Snapshot(), "seed %d cursor %d", seed, before.Cursor)

			_, err = e.StepForward()
			require.NoError(t, err)
			require.Equal(t, after, e.Snapshot())
		}
	}
}

// TestFinalLaws: after a full run the total equals the accepted weights and
// accepted count equals n minus the number of components; Solve agrees.
func TestFinalLaws(t *testing.T) {
	for seed := int64(10); seed < 20; seed++ {
		p := 0.05 + float64(seed%5)*0.1
		g := buildRandomGraph(seed, 15, p)
		e := newLoaded(t, g)
		for !e.Complete() {
			_, err := e.StepForward()
			require.NoError(t, err)
		}

		var sum float64
		accepted := 0
		for _, edge := range e.Graph().Edges {
			if edge.State == core.Accepted {
				sum += edge.W
				accepted++
			}
		}
		comps := componentsOf(g)
		assert.Equal(t, sum, e.TotalWeight())
		assert.Equal(t, g.Order()-comps, accepted)
		assert.Equal(t, accepted, e.Accepted())
		assert.Len(t, e.Groups(), comps)

		res, err := kruskal.Solve(g)
		require.NoError(t, err)
		assert.Equal(t, comps, res.Components)
		assert.Equal(t, e.TotalWeight(), res.TotalWeight)
		assert.Len(t, res.Edges, accepted)
	}
}

func TestLoad_EmptyEdgesIsComplete(t *testing.T) {
	e := newLoaded(t, core.NewGraph(4))
	assert.Equal(t, kruskal.Complete, e.Status())
	_, err := e.StepForward()
	assert.ErrorIs(t, err, kruskal.ErrComplete)
	assert.Len(t, e.Components(), 4)
}

func TestLoad_InvalidKeepsPreviousRun(t *testing.T) {
	e := newLoaded(t, buildTriangle())
	_, err := e.StepForward()
	require.NoError(t, err)
	before := e.Snapshot()

	bad := core.Graph{
		Nodes: []core.Node{{ID: 0}, {ID: 1}},
		Edges: []core.Edge{{ID: 0, U: 0, V: 0, W: 1}},
	}
	err = e.Load(bad)
	assert.ErrorIs(t, err, kruskal.ErrInvalidGraph)
	assert.ErrorIs(t, err, core.ErrSelfLoop)
	assert.Equal(t, before, e.Snapshot())
}

func TestLoad_RejectsNonFiniteWeights(t *testing.T) {
	e := kruskal.New(kruskal.WithInvariantChecks())
	nan := core.NewGraph(3,
		core.Edge{U: 0, V: 1, W: 1},
		core.Edge{U: 1, V: 2, W: math.NaN()},
		core.Edge{U: 0, V: 2, W: 0.5},
	)
	err := e.Load(nan)
	assert.ErrorIs(t, err, kruskal.ErrInvalidGraph)
	assert.ErrorIs(t, err, core.ErrWeight)
	assert.Equal(t, kruskal.Idle, e.Status())

	infs := core.NewGraph(3,
		core.Edge{U: 0, V: 1, W: math.Inf(-1)},
		core.Edge{U: 1, V: 2, W: math.Inf(1)},
	)
	assert.ErrorIs(t, e.Load(infs), core.ErrWeight)

	_, err = kruskal.Solve(nan)
	assert.ErrorIs(t, err, kruskal.ErrInvalidGraph)
}

func TestLoad_ResetsStatesAndCopies(t *testing.T) {
	g := buildTriangle()
	g.Edges[0].State = core.Rejected
	e := newLoaded(t, g)
	st, _ := e.EdgeState(0)
	assert.Equal(t, core.Pending, st)

	_, err := e.StepForward()
	require.NoError(t, err)
	assert.Equal(t, core.Rejected, g.Edges[0].State, "caller's graph is never touched")

	first := e.RunID()
	require.NoError(t, e.Load(buildTriangle()))
	assert.NotEqual(t, first, e.RunID())
	assert.Zero(t, e.Cursor())
}

func TestReset(t *testing.T) {
	e := newLoaded(t, buildTriangle())
	initial := e.Snapshot()
	_, err := e.SeekTo(2)
	require.NoError(t, err)
	require.NoError(t, e.Reset())
	assert.Equal(t, initial, e.Snapshot())
}

func TestSeekTo(t *testing.T) {
	g := buildRandomGraph(3, 10, 0.5)
	ref := newLoaded(t, g)
	e := newLoaded(t, g)

	// Forward seek equals stepping.
	for i := 0; i < 5; i++ {
		_, err := ref.StepForward()
		require.NoError(t, err)
	}
	got, err := e.SeekTo(5)
	require.NoError(t, err)
	assert.Equal(t, 5, got)
	assert.Equal(t, ref.Graph(), e.Graph())
	assert.Equal(t, ref.Components(), e.Components())

	// Backward seek equals repeated StepBackward.
	for i := 0; i < 3; i++ {
		_, err = ref.StepBackward()
		require.NoError(t, err)
	}
	_, err = e.SeekTo(2)
	require.NoError(t, err)
	assert.Equal(t, ref.Graph(), e.Graph())
	assert.Equal(t, ref.TotalWeight(), e.TotalWeight())

	_, err = e.SeekTo(g.Size() + 1)
	assert.ErrorIs(t, err, kruskal.ErrCursorRange)
	_, err = e.SeekTo(-1)
	assert.ErrorIs(t, err, kruskal.ErrCursorRange)
	assert.Equal(t, 2, e.Cursor())
}

func TestSpanningTreePolicy(t *testing.T) {
	e := newLoaded(t, buildTriangle(), kruskal.WithCompletionPolicy(kruskal.CompleteOnSpanningTree))
	assert.Equal(t, kruskal.CompleteOnSpanningTree, e.Policy())

	_, err := e.StepForward()
	require.NoError(t, err)
	st, err := e.StepForward()
	require.NoError(t, err)
	assert.True(t, st.Complete)
	assert.Equal(t, 2, e.Cursor(), "third edge is never considered")
	assert.Equal(t, kruskal.Complete, e.Status())

	last, _ := e.EdgeState(2)
	assert.Equal(t, core.Pending, last)
	_, err = e.StepForward()
	assert.ErrorIs(t, err, kruskal.ErrComplete)
	_, err = e.SeekTo(3)
	assert.ErrorIs(t, err, kruskal.ErrComplete)

	// Stepping back leaves Complete.
	_, err = e.StepBackward()
	require.NoError(t, err)
	assert.Equal(t, kruskal.Running, e.Status())

	// Forward seek past the spanning point stops there.
	got, err := e.SeekTo(3)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestParseCompletionPolicy(t *testing.T) {
	p, err := kruskal.ParseCompletionPolicy("spanning-tree")
	require.NoError(t, err)
	assert.Equal(t, kruskal.CompleteOnSpanningTree, p)
	p, err = kruskal.ParseCompletionPolicy("")
	require.NoError(t, err)
	assert.Equal(t, kruskal.CompleteOnExhaustion, p)
	assert.Equal(t, "exhaustion", p.String())
	_, err = kruskal.ParseCompletionPolicy("eager")
	assert.ErrorIs(t, err, kruskal.ErrPolicy)
}

// TestTieBreakDeterminism: equal weights are processed in provider order, every time.
func TestTieBreakDeterminism(t *testing.T) {
	g := core.NewGraph(4,
		core.Edge{U: 2, V: 3, W: 1},
		core.Edge{U: 0, V: 1, W: 1},
		core.Edge{U: 1, V: 2, W: 1},
		core.Edge{U: 0, V: 3, W: 1},
	)
	var first []core.Edge
	for run := 0; run < 5; run++ {
		e := newLoaded(t, g)
		var order []core.Edge
		for !e.Complete() {
			st, err := e.StepForward()
			require.NoError(t, err)
			order = append(order, st.Edge)
		}
		assert.Equal(t, [2]int{2, 3}, [2]int{order[0].U, order[0].V})
		assert.Equal(t, core.Rejected, order[3].State)
		if first == nil {
			first = order
			continue
		}
		assert.Equal(t, first, order)
	}
}

// TestConcurrentCommands funnels commands from many goroutines through one engine.
func TestConcurrentCommands(t *testing.T) {
	g := buildRandomGraph(99, 20, 0.3)
	e := newLoaded(t, g)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(back bool) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if back && i%3 == 0 {
					_, _ = e.StepBackward()
				} else {
					_, _ = e.StepForward()
				}
				_ = e.Snapshot()
			}
		}(w%2 == 0)
	}
	wg.Wait()
	require.NoError(t, e.Verify())

	for !e.Complete() {
		_, err := e.StepForward()
		require.NoError(t, err)
	}
	res, err := kruskal.Solve(g)
	require.NoError(t, err)
	assert.Equal(t, res.TotalWeight, e.TotalWeight())
}

type recorder struct {
	loads, resets int
	steps         []kruskal.Direction
	replays       []int
}

func (r *recorder) Loaded(string, int, int)                 { r.loads++ }
func (r *recorder) Stepped(d kruskal.Direction, _ core.Edge) { r.steps = append(r.steps, d) }
func (r *recorder) Replayed(target int)                     { r.replays = append(r.replays, target) }
func (r *recorder) Reset()                                  { r.resets++ }

func TestObserver(t *testing.T) {
	rec := &recorder{}
	e := newLoaded(t, buildTriangle(), kruskal.WithObserver(rec))
	_, _ = e.StepForward()
	_, _ = e.StepForward()
	_, _ = e.StepBackward()
	_ = e.Reset()
	_, _ = e.StepForward() // after reset: fine
	_, _ = e.StepBackward()
	_, _ = e.StepBackward() // ErrAtStart: no event

	assert.Equal(t, 1, rec.loads)
	assert.Equal(t, 1, rec.resets)
	assert.Equal(t, []kruskal.Direction{kruskal.Forward, kruskal.Forward, kruskal.Backward, kruskal.Forward, kruskal.Backward}, rec.steps)
	assert.Equal(t, []int{1, 0}, rec.replays)
}

func TestObserver_SeekEvents(t *testing.T) {
	rec := &recorder{}
	e := newLoaded(t, buildTriangle(), kruskal.WithObserver(rec))

	_, err := e.SeekTo(0)
	require.NoError(t, err)
	assert.Empty(t, rec.steps, "seek to the cursor emits nothing")
	assert.Empty(t, rec.replays)

	_, err = e.SeekTo(3)
	require.NoError(t, err)
	assert.Equal(t, []kruskal.Direction{kruskal.Forward, kruskal.Forward, kruskal.Forward}, rec.steps)
	assert.Empty(t, rec.replays, "forward seek does not replay")

	_, err = e.SeekTo(3)
	require.NoError(t, err)
	assert.Len(t, rec.steps, 3)

	_, err = e.SeekTo(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, rec.replays)
	assert.Len(t, rec.steps, 3, "backward seek reports a replay, not a step")
}

func TestLogger_DebugRecords(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	e := newLoaded(t, buildTriangle(), kruskal.WithLogger(zap.New(obsCore)))
	_, _ = e.StepForward()
	_, _ = e.StepForward()
	_, _ = e.StepForward()

	assert.Equal(t, 1, logs.FilterMessage("graph loaded").Len())
	steps := logs.FilterMessage("step forward").AllUntimed()
	require.Len(t, steps, 3)
	assert.Equal(t, "rejected", steps[2].ContextMap()["verdict"])
	assert.Equal(t, 3.0, steps[2].ContextMap()["total"])
}
