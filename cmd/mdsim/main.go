/*Command mdsim drives a small periodic Lennard-Jones simulation through the
Update/RebuildHalo/ComputeInteractions cycle, letting the tuner package pick
a container/traversal/layout/Newton-3 configuration as it goes. It is the
one place in this module allowed to import a CLI framework, a config-file
parser, and a CPU-feature hint library: every other package stays a pure
library, consistent with how phil-mansfield/gotetra keeps its gcfg-and-flag
wiring confined to main.go while the geom/io packages stay framework-free.*/
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/go-md/autopas/apaerr"
	"github.com/go-md/autopas/config"
	"github.com/go-md/autopas/container"
	"github.com/go-md/autopas/container/directsum"
	"github.com/go-md/autopas/container/linkedcells"
	"github.com/go-md/autopas/container/vcl"
	"github.com/go-md/autopas/examples/lj"
	"github.com/go-md/autopas/halo"
	"github.com/go-md/autopas/particle"
	"github.com/go-md/autopas/rebuild"
	"github.com/go-md/autopas/tuner"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// flags collects the pflag-backed overrides newRootCmd registers; any field
// left at its zero value defers to the scenario file's value.
type flags struct {
	scenarioPath  string
	exampleConfig bool
	steps         int
	containers    []string
	newton3       string
	verbose       bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "mdsim",
		Short: "Run a periodic Lennard-Jones demo through the auto-tuning engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.exampleConfig {
				fmt.Println(ExampleScenarioFile)
				return nil
			}
			if f.scenarioPath == "" {
				return fmt.Errorf("a scenario file is required; pass --scenario or --example-config")
			}
			sc, err := ReadScenario(f.scenarioPath)
			if err != nil {
				return err
			}
			if f.steps > 0 {
				sc.Steps = f.steps
			}
			return run(sc, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.scenarioPath, "scenario", "", "path to a gcfg scenario file")
	fl.BoolVar(&f.exampleConfig, "example-config", false, "print an example scenario file and exit")
	fl.IntVar(&f.steps, "steps", 0, "override Scenario.Steps")
	fl.StringSliceVar(&f.containers, "containers", nil, "restrict the tuner to these containers (directsum,linkedcells,vcl)")
	fl.StringVar(&f.newton3, "newton3", "both", "newton3 setting to allow: on, off, or both")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log every sampled configuration, not just commits")
	return cmd
}

// allowedContainers maps the --containers flag to config.ContainerKind,
// defaulting to all three when the flag is unset.
func allowedContainers(names []string) []config.ContainerKind {
	if len(names) == 0 {
		return []config.ContainerKind{config.DirectSum, config.LinkedCells, config.VerletClusterLists}
	}
	byName := map[string]config.ContainerKind{
		"directsum":   config.DirectSum,
		"linkedcells": config.LinkedCells,
		"vcl":         config.VerletClusterLists,
	}
	return lo.FilterMap(names, func(n string, _ int) (config.ContainerKind, bool) {
		k, ok := byName[n]
		return k, ok
	})
}

func allowedNewton3(setting string) []bool {
	switch setting {
	case "on":
		return []bool{true}
	case "off":
		return []bool{false}
	default:
		return []bool{true, false}
	}
}

// defaultLayoutOrder uses an AVX2 hint to decide whether SoA (which the
// functor's AVX-friendly columnar kernels favor) or AoS should be tried
// first during sampling; both are always sampled, this only affects the
// order in which the layouts of each container/traversal pair are measured.
func defaultLayoutOrder() []config.Layout {
	if cpu.X86.HasAVX2 {
		return []config.Layout{config.SoA, config.AoS}
	}
	return []config.Layout{config.AoS, config.SoA}
}

func newContainer(kind config.ContainerKind, opts container.Options) (container.Container, error) {
	switch kind {
	case config.DirectSum:
		return directsum.New(opts)
	case config.LinkedCells:
		return linkedcells.New(opts)
	case config.VerletClusterLists:
		return vcl.New(opts)
	default:
		return nil, fmt.Errorf("unknown container kind %v", kind)
	}
}

func run(sc *ScenarioConfig, f *flags) error {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	opts := container.Options{
		BoxMin:           [3]float64{0, 0, 0},
		BoxMax:           [3]float64{sc.BoxLen, sc.BoxLen, sc.BoxLen},
		Cutoff:           sc.Cutoff,
		SkinPerTimestep:  sc.SkinPerTimestep,
		RebuildFrequency: sc.RebuildFrequency,
		ClusterSize:      sc.ClusterSize,
	}

	at, err := tuner.New(tuner.Options{
		AllowedContainers: allowedContainers(f.containers),
		AllowedTraversals: []config.TraversalKind{
			config.DirectSumAllPairs, config.C01, config.C08, config.C18, config.Sliced, config.ClusterColoring,
		},
		AllowedLayouts:   defaultLayoutOrder(),
		AllowedNewton3:   allowedNewton3(f.newton3),
		SelectorStrategy: tuner.FastestMedian,
		MaxSamples:       sc.MaxSamples,
		TuningInterval:   sc.TuningInterval,
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(sc.Seed))
	containers := make(map[config.ContainerKind]container.Container)
	policies := make(map[config.ContainerKind]*rebuild.Policy)
	functor := lj.New(sc.Cutoff)

	var active container.Container
	var activeKind config.ContainerKind
	var activePolicy *rebuild.Policy

	seedParticles := func(c container.Container) error {
		for i := 0; i < sc.NumParticles; i++ {
			pos := [3]float64{
				rng.Float64() * sc.BoxLen,
				rng.Float64() * sc.BoxLen,
				rng.Float64() * sc.BoxLen,
			}
			if err := c.AddOwned(particle.New(pos, uint64(i), 0)); err != nil {
				return err
			}
		}
		return nil
	}

	for step := 0; step < sc.Steps; step++ {
		cfg, err := at.NextConfig()
		if err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}

		if active == nil || cfg.Container != activeKind {
			c, ok := containers[cfg.Container]
			if !ok {
				c, err = newContainer(cfg.Container, opts)
				if err != nil {
					return err
				}
				if err := seedParticles(c); err != nil {
					return err
				}
				containers[cfg.Container] = c
				policies[cfg.Container] = rebuild.NewPolicy(opts.SkinPerTimestep, opts.RebuildFrequency)
			}
			active, activeKind, activePolicy = c, cfg.Container, policies[cfg.Container]
		}

		ex := halo.New(active, opts)
		leavers := active.Update(true)
		if err := ex.Reinsert(leavers); err != nil {
			return err
		}
		if err := ex.RebuildHalo(); err != nil {
			return err
		}

		var owned []particle.Particle
		active.ForEach(func(p *particle.Particle) { owned = append(owned, *p) }, particle.OwnedOnly)
		if activePolicy.NeedsRebuild(owned) {
			if err := active.RebuildNeighborLists(cfg); err != nil {
				return err
			}
			activePolicy.MarkRebuilt(owned)
		}
		activePolicy.Tick()

		active.ForEach(func(p *particle.Particle) { p.ResetForce() }, particle.OwnedOrHalo)

		start := time.Now()
		err = active.ComputeInteractions(functor, cfg)
		elapsed := time.Since(start)

		if err != nil {
			switch {
			case apaerrIsDemotable(err):
				at.Demote(cfg)
				continue
			default:
				return fmt.Errorf("step %d, config %s: %w", step, cfg, err)
			}
		}

		at.RecordSample(cfg, elapsed)
		if f.verbose {
			logger.Printf("step %d: %s took %v", step, cfg, elapsed)
		}
		if at.Tick() {
			at.Retune()
		}
	}

	logger.Printf("finished %d steps, tuner ended in state %s", sc.Steps, at.State())
	return nil
}

// apaerrIsDemotable reports whether err means this configuration can never
// work (as opposed to a transient failure worth propagating), in which case
// the tuner should permanently drop it rather than abort the run.
func apaerrIsDemotable(err error) bool {
	return apaerr.Is(err, apaerr.TraversalIncompatible) || apaerr.Is(err, apaerr.InvalidCapability) ||
		apaerr.Is(err, apaerr.DimensionTooSmall)
}
