// Package config holds the settings a host exposes to its user and the clamps
// that keep them in range. Settings carries go-arg tags, so a CLI can parse it
// straight from flags and environment variables.
//
// Out-of-range numbers are clamped silently, the way a slider would. Unknown
// names (policy, format, log level) are errors, reported all at once.
package config

import (
	"fmt"
	"math"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/kruskalviz/graphio"
	"github.com/katalvlaran/kruskalviz/kruskal"
	"github.com/katalvlaran/kruskalviz/playback"
)

// Bounds of the user-facing configuration surface.
const (
	MinNodeCount = 3
	MaxNodeCount = 30

	MinProbability = 0.0
	MaxProbability = 1.0

	DefaultProbability = 0.3
)

// Settings is the complete host configuration.
//
// EdgeProbability has no effect on the replay: graphs are read from a file, so
// the value is clamped and logged with the run and nothing more.
type Settings struct {
	Graph string `arg:"positional,required" help:"graph document to load (YAML or JSON)"`

	MaxNodes        int     `arg:"--max-nodes,env:KRUSKALVIZ_MAX_NODES" help:"largest graph accepted, clamped to [3,30]"`
	EdgeProbability float64 `arg:"--edge-probability,env:KRUSKALVIZ_EDGE_PROBABILITY" help:"density hint, clamped to [0,1]; only logged with the run, the graph file decides the edges"`

	Speed     float64       `arg:"--speed,env:KRUSKALVIZ_SPEED" help:"playback speed multiplier, clamped to [0.1,2.0]"`
	BaseDelay time.Duration `arg:"--base-delay" help:"step delay at speed 1.0"`
	MinDelay  time.Duration `arg:"--min-delay" help:"shortest step delay at any speed"`
	Policy    string        `arg:"--policy,env:KRUSKALVIZ_POLICY" help:"completion policy: exhaustion or spanning-tree"`
	Manual    bool          `arg:"--manual" help:"step without the timer instead of playing"`
	Verify    bool          `arg:"--verify" help:"check engine invariants after every command"`

	Dump    string `arg:"--dump" help:"write the final view to this path (- for stdout)"`
	Format  string `arg:"--format" help:"dump format: yaml or json"`
	Metrics bool   `arg:"--metrics" help:"print collected metrics on exit"`

	LogLevel string `arg:"--log-level,env:KRUSKALVIZ_LOG_LEVEL" help:"debug, info, warn or error"`
	Dev      bool   `arg:"--dev" help:"human-readable development logging"`
}

// Default returns the settings used when nothing is overridden.
func Default() Settings {
	return Settings{
		MaxNodes:        MaxNodeCount,
		EdgeProbability: DefaultProbability,
		Speed:           playback.DefaultSpeed,
		BaseDelay:       playback.DefaultBaseDelay,
		MinDelay:        playback.DefaultMinDelay,
		Policy:          kruskal.CompleteOnExhaustion.String(),
		Format:          graphio.YAML.String(),
		LogLevel:        zapcore.InfoLevel.String(),
	}
}

// ClampNodeCount maps n into [MinNodeCount, MaxNodeCount].
func ClampNodeCount(n int) int {
	return min(max(n, MinNodeCount), MaxNodeCount)
}

// ClampProbability maps p into [0, 1]; NaN becomes DefaultProbability.
func ClampProbability(p float64) float64 {
	if math.IsNaN(p) {
		return DefaultProbability
	}

	return math.Min(math.Max(p, MinProbability), MaxProbability)
}

// ClampSpeed maps x into the playback speed range.
func ClampSpeed(x float64) float64 {
	return playback.ClampSpeed(x, playback.MinSpeedLimit, playback.MaxSpeedLimit)
}

// Normalize clamps the numeric fields in place and checks the named ones.
// Non-positive delays fall back to their defaults.
func (s *Settings) Normalize() error {
	s.MaxNodes = ClampNodeCount(s.MaxNodes)
	s.EdgeProbability = ClampProbability(s.EdgeProbability)
	s.Speed = ClampSpeed(s.Speed)
	if s.BaseDelay <= 0 {
		s.BaseDelay = playback.DefaultBaseDelay
	}
	if s.MinDelay <= 0 {
		s.MinDelay = playback.DefaultMinDelay
	}

	var result *multierror.Error
	if _, err := kruskal.ParseCompletionPolicy(s.Policy); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := graphio.ParseFormat(s.Format); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := zapcore.ParseLevel(s.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("config: log level: %w", err))
	}

	return result.ErrorOrNil()
}

// CompletionPolicy returns the parsed policy; exhaustion if the name is invalid.
func (s Settings) CompletionPolicy() kruskal.CompletionPolicy {
	p, err := kruskal.ParseCompletionPolicy(s.Policy)
	if err != nil {
		return kruskal.CompleteOnExhaustion
	}

	return p
}

// DumpFormat returns the parsed dump format; YAML if the name is invalid.
func (s Settings) DumpFormat() graphio.Format {
	f, _ := graphio.ParseFormat(s.Format)

	return f
}

// GraphOptions bounds the node count of loaded graphs.
func (s Settings) GraphOptions() []graphio.Option {
	return []graphio.Option{graphio.WithNodeBounds(MinNodeCount, s.MaxNodes)}
}

// EngineOptions returns the engine options these settings select.
func (s Settings) EngineOptions(log *zap.Logger, obs kruskal.Observer) []kruskal.Option {
	opts := []kruskal.Option{
		kruskal.WithCompletionPolicy(s.CompletionPolicy()),
		kruskal.WithLogger(log),
	}
	if obs != nil {
		opts = append(opts, kruskal.WithObserver(obs))
	}
	if s.Verify {
		opts = append(opts, kruskal.WithInvariantChecks())
	}

	return opts
}

// PlaybackOptions returns the scheduler options these settings select.
func (s Settings) PlaybackOptions(log *zap.Logger, obs playback.Observer) []playback.Option {
	opts := []playback.Option{
		playback.WithBaseDelay(s.BaseDelay),
		playback.WithMinDelay(s.MinDelay),
		playback.WithSpeed(s.Speed),
		playback.WithLogger(log),
	}
	if obs != nil {
		opts = append(opts, playback.WithObserver(obs))
	}

	return opts
}

// NewLogger builds a zap logger at LogLevel: the production JSON encoder, or
// the console encoder when Dev is set.
func (s Settings) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if s.Dev {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}
