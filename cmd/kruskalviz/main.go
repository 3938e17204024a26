// Command kruskalviz loads a weighted graph and replays Kruskal's algorithm
// over it one edge at a time, either on a timer or as fast as possible, logging
// every verdict. The final state can be dumped as YAML or JSON.
//
//	kruskalviz --speed 2 --dump - graph.yaml
//	kruskalviz --manual --policy spanning-tree --format json --dump out.json graph.json
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"

	"github.com/katalvlaran/kruskalviz/config"
	"github.com/katalvlaran/kruskalviz/core"
	"github.com/katalvlaran/kruskalviz/graphio"
	"github.com/katalvlaran/kruskalviz/kruskal"
	"github.com/katalvlaran/kruskalviz/metrics"
	"github.com/katalvlaran/kruskalviz/playback"
)

// Main parses the command line and runs until the replay completes or the
// process is interrupted.
func Main() error {
	args := config.Default()
	parser, err := arg.NewParser(arg.Config{Program: "kruskalviz"}, &args)
	if err != nil {
		// programming error
		return err
	}
	err = parser.Parse(os.Args[1:])
	if errors.Is(err, arg.ErrHelp) {
		parser.WriteHelp(os.Stdout)
		return nil
	}
	if err != nil {
		parser.WriteUsage(os.Stderr)
		return err
	}
	if err := args.Normalize(); err != nil {
		return err
	}

	log, err := args.NewLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, args, log, os.Stdout)
}

// run replays the graph named by args and writes the summary (and any "-"
// dump or metrics) to out.
func run(ctx context.Context, args config.Settings, log *zap.Logger, out io.Writer) error {
	g, err := graphio.ReadFile(args.Graph, args.GraphOptions()...)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector("kruskalviz")
	stops := &stopWatcher{Observer: collector, done: make(chan string, 1)}

	engine := kruskal.New(args.EngineOptions(log, collector)...)
	ctl := playback.NewController(engine,
		append(args.PlaybackOptions(log, stops), playback.WithOnStep(func(st kruskal.Step) {
			logStep(log, st)
		}))...)
	defer ctl.Close()

	if err := ctl.Load(g); err != nil {
		return err
	}
	log.Info("graph loaded",
		zap.String("file", args.Graph),
		zap.String("run", engine.RunID()),
		zap.Int("nodes", g.Order()),
		zap.Int("edges", g.Size()),
		zap.Float64("edge_probability", args.EdgeProbability),
		zap.Stringer("policy", engine.Policy()),
	)

	if args.Manual {
		err = stepAll(ctx, ctl, log)
	} else {
		err = play(ctx, ctl, stops.done, log)
	}
	if err != nil {
		return err
	}

	if err := summarize(out, g, ctl.View(), log); err != nil {
		return err
	}
	if args.Dump != "" {
		if err := dump(args.Dump, out, ctl.View(), args.DumpFormat()); err != nil {
			return err
		}
	}
	if args.Metrics {
		return writeMetrics(out, collector)
	}

	return nil
}

// stepAll issues StepForward until the run completes.
func stepAll(ctx context.Context, ctl *playback.Controller, log *zap.Logger) error {
	for {
		if ctx.Err() != nil {
			log.Warn("interrupted", zap.Int("cursor", ctl.Engine().Cursor()))
			return nil
		}
		st, err := ctl.StepForward()
		if errors.Is(err, kruskal.ErrComplete) {
			return nil
		}
		if err != nil {
			return err
		}
		logStep(log, st)
		if st.Complete {
			return nil
		}
	}
}

// play starts the timer and waits for it to stop on its own.
func play(ctx context.Context, ctl *playback.Controller, stopped <-chan string, log *zap.Logger) error {
	if !ctl.Play() {
		return nil
	}
	select {
	case <-ctx.Done():
		ctl.Pause()
		log.Warn("interrupted", zap.Int("cursor", ctl.Engine().Cursor()))
		return nil
	case reason := <-stopped:
		if reason == playback.ReasonError {
			return errors.New("kruskalviz: playback stopped on a step error")
		}
		return nil
	}
}

func logStep(log *zap.Logger, st kruskal.Step) {
	log.Info("step",
		zap.Stringer("direction", st.Direction),
		zap.Int("edge", st.Edge.ID),
		zap.Stringer("span", st.Edge),
		zap.Stringer("verdict", st.Edge.State),
		zap.Int("cursor", st.Cursor),
		zap.Float64("total", st.TotalWeight),
		zap.Bool("complete", st.Complete),
	)
}

// summarize prints the outcome and, for a finished run, cross-checks it
// against a batch run.
func summarize(out io.Writer, g core.Graph, v playback.View, log *zap.Logger) error {
	want, err := kruskal.Solve(g)
	if err != nil {
		return err
	}
	done := v.Status == kruskal.Complete
	if done && (want.TotalWeight != v.TotalWeight || len(want.Edges) != v.Accepted) {
		log.Error("replay disagrees with batch run",
			zap.Float64("replay_total", v.TotalWeight),
			zap.Float64("batch_total", want.TotalWeight),
			zap.Int("replay_accepted", v.Accepted),
			zap.Int("batch_accepted", len(want.Edges)),
		)
	}

	kind := "minimum spanning tree"
	switch {
	case !done:
		kind = "partial run"
	case !want.Spanning():
		kind = fmt.Sprintf("minimum spanning forest (%d components)", want.Components)
	}
	_, err = fmt.Fprintf(out, "%s: %d of %d edges considered, %d accepted, %d rejected, total weight %g\n",
		kind, v.Cursor, v.EdgeCount, v.Accepted, v.Rejected, v.TotalWeight)
	if err != nil {
		return err
	}
	for _, e := range v.Edges {
		if e.State == core.Accepted {
			if _, err := fmt.Fprintf(out, "  %s\n", e); err != nil {
				return err
			}
		}
	}

	return nil
}

func dump(path string, stdout io.Writer, v playback.View, f graphio.Format) error {
	if path == "-" {
		return graphio.Encode(stdout, v, f)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("kruskalviz: dump: %w", err)
	}
	if err := graphio.Encode(file, v, f); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}

func writeMetrics(out io.Writer, c *metrics.Collector) error {
	families, err := c.Registry().Gather()
	if err != nil {
		return fmt.Errorf("kruskalviz: gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return err
		}
	}

	return nil
}

// stopWatcher forwards playback events and reports why playback stopped.
type stopWatcher struct {
	playback.Observer
	done chan string
}

func (w *stopWatcher) Stopped(reason string) {
	w.Observer.Stopped(reason)
	select {
	case w.done <- reason:
	default:
	}
}

func main() {
	if err := Main(); err != nil {
		fmt.Fprintf(os.Stderr, "kruskalviz: %v\n", err)
		os.Exit(1)
	}
}
