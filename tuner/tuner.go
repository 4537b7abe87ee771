/*Package tuner implements the auto-tuner state machine from §4.5: it
samples every applicable Configuration in its candidate set, picks a winner
by one of three selector strategies, then stays committed to that winner
until the caller asks it to tune again.*/
package tuner

import (
	"log"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/go-md/autopas/apaerr"
	"github.com/go-md/autopas/config"
)

// TuningState is the auto-tuner's two-state machine.
type TuningState int

const (
	// Sampling means the tuner is still measuring candidates and
	// NextConfig returns the next untried one.
	Sampling TuningState = iota
	// Committed means a winner has been chosen and NextConfig always
	// returns it, until Retune is called.
	Committed
)

func (s TuningState) String() string {
	if s == Committed {
		return "Committed"
	}
	return "Sampling"
}

// SelectorStrategy names how the tuner picks a winner from a candidate's
// samples.
type SelectorStrategy int

const (
	// FastestAbs picks the configuration with the single fastest sample.
	FastestAbs SelectorStrategy = iota
	// FastestMean picks the configuration with the fastest sample mean.
	FastestMean
	// FastestMedian picks the configuration with the fastest sample median.
	FastestMedian
)

// Options are an AutoTuner's construction parameters, per §6.3.
type Options struct {
	AllowedContainers  []config.ContainerKind
	AllowedTraversals  []config.TraversalKind
	AllowedLayouts     []config.Layout
	AllowedNewton3     []bool
	SelectorStrategy   SelectorStrategy
	MaxSamples         int
	TuningInterval     int
	Logger             *log.Logger
}

// AutoTuner drives the Sampling -> Committed cycle over a fixed candidate
// set of Configurations.
type AutoTuner struct {
	opts       Options
	candidates []config.Configuration
	samples    map[config.Configuration][]time.Duration
	state      TuningState
	cursor     int // index into candidates of the next one to sample
	committed  config.Configuration
	sinceTune  int
	logger     *log.Logger
}

// New builds the full cross-product of allowed dimensions, minus any
// Newton-3/container/traversal mismatch recorded by the caller as it
// discovers InvalidCapability or TraversalIncompatible errors (see Demote),
// and enters Sampling over what remains.
func New(opts Options) (*AutoTuner, error) {
	if opts.MaxSamples < 1 {
		opts.MaxSamples = 1
	}
	if opts.TuningInterval < 1 {
		opts.TuningInterval = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	var candidates []config.Configuration
	for _, c := range opts.AllowedContainers {
		for _, tr := range opts.AllowedTraversals {
			for _, l := range opts.AllowedLayouts {
				for _, n3 := range opts.AllowedNewton3 {
					candidates = append(candidates, config.Configuration{
						Container: c, Traversal: tr, Layout: l, Newton3: n3,
					})
				}
			}
		}
	}
	if len(candidates) == 0 {
		return nil, apaerr.New(apaerr.NoApplicableConfiguration, "tuner.New",
			"no configurations in the cross product of the allowed dimensions")
	}
	return &AutoTuner{
		opts:       opts,
		candidates: candidates,
		samples:    make(map[config.Configuration][]time.Duration),
		state:      Sampling,
		logger:     opts.Logger,
	}, nil
}

// State reports the tuner's current state.
func (t *AutoTuner) State() TuningState { return t.state }

// NextConfig returns the configuration the caller should run this
// iteration: the next unsampled candidate while Sampling, or the committed
// winner once Committed.
func (t *AutoTuner) NextConfig() (config.Configuration, error) {
	if t.state == Committed {
		return t.committed, nil
	}
	if t.cursor >= len(t.candidates) {
		return config.Configuration{}, apaerr.New(apaerr.NoApplicableConfiguration, "tuner.NextConfig",
			"every candidate has been demoted or exhausted")
	}
	return t.candidates[t.cursor], nil
}

// WillRebuild reports whether the configuration NextConfig is about to
// return differs in container from the previously committed/sampled one, in
// which case a structural rebuild is mandatory regardless of the skin
// policy. Callers still consult their own rebuild.Policy for the
// skin/frequency trigger within a single configuration's lifetime.
func (t *AutoTuner) WillRebuild(previous config.Configuration) bool {
	next, err := t.NextConfig()
	if err != nil {
		return false
	}
	return next.Container != previous.Container
}

// Demote removes cfg from the candidate set entirely, used when a
// container/traversal/functor combination turned out to be incompatible
// (apaerr.TraversalIncompatible or apaerr.InvalidCapability) rather than
// merely slow. It never advances the cursor past what Demote itself removes.
func (t *AutoTuner) Demote(cfg config.Configuration) {
	delete(t.samples, cfg)
	out := t.candidates[:0]
	for _, c := range t.candidates {
		if c != cfg {
			out = append(out, c)
		}
	}
	if t.cursor > len(out) {
		t.cursor = len(out)
	}
	t.candidates = out
}

// RecordSample stores one measured duration for cfg. Once cfg has
// MaxSamples recorded, the tuner advances to the next candidate; once every
// candidate has MaxSamples recorded, it selects a winner and commits.
func (t *AutoTuner) RecordSample(cfg config.Configuration, elapsed time.Duration) {
	if t.state == Committed {
		return
	}
	t.samples[cfg] = append(t.samples[cfg], elapsed)
	if len(t.samples[cfg]) >= t.opts.MaxSamples {
		t.cursor++
	}
	if t.cursor >= len(t.candidates) {
		t.commit()
	}
}

func (t *AutoTuner) commit() {
	best := t.candidates[0]
	bestScore := t.score(best)
	for _, c := range t.candidates[1:] {
		if s := t.score(c); s < bestScore {
			best, bestScore = c, s
		}
	}
	t.committed = best
	t.state = Committed
	t.sinceTune = 0
	t.logger.Printf("autopas: tuner committed to %s (score %v)", best, bestScore)
}

func (t *AutoTuner) score(cfg config.Configuration) float64 {
	samples := t.samples[cfg]
	if len(samples) == 0 {
		return math.Inf(1)
	}
	xs := make([]float64, len(samples))
	for i, d := range samples {
		xs[i] = float64(d)
	}
	switch t.opts.SelectorStrategy {
	case FastestMean:
		return stat.Mean(xs, nil)
	case FastestMedian:
		sort.Float64s(xs)
		return stat.Quantile(0.5, stat.Empirical, xs, nil)
	default: // FastestAbs
		sort.Float64s(xs)
		return xs[0]
	}
}

// Retune discards the committed winner (but keeps every candidate in the
// set) and re-enters Sampling, used by the caller once TuningInterval
// iterations have elapsed under a committed configuration.
func (t *AutoTuner) Retune() {
	t.samples = make(map[config.Configuration][]time.Duration)
	t.cursor = 0
	t.state = Sampling
	t.logger.Printf("autopas: tuner re-entering Sampling after %d committed iterations", t.sinceTune)
}

// Tick increments the iteration counter under a committed configuration and
// reports whether TuningInterval has been reached (i.e. the caller should
// call Retune).
func (t *AutoTuner) Tick() bool {
	if t.state != Committed {
		return false
	}
	t.sinceTune++
	return t.sinceTune >= t.opts.TuningInterval
}
