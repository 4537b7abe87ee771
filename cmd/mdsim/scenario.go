/*Scenario file parsing for the mdsim demo, grounded on
phil-mansfield/gotetra's gcfg usage (design/config.go, main/main.go): a plain
struct of sections read with gcfg.ReadFileInto, with defaulting and
validation left to the caller rather than done by gcfg itself.*/
package main

import (
	"fmt"

	"gopkg.in/gcfg.v1"
)

// ScenarioConfig is the [Scenario] section of a scenario file: the physical
// box, particle count, and tuner knobs an engineer would want to sweep
// without recompiling the demo.
type ScenarioConfig struct {
	// Required.
	BoxLen       float64
	NumParticles int
	Cutoff       float64

	// Optional, defaulted in CheckInit.
	SkinPerTimestep  float64
	RebuildFrequency int
	ClusterSize      int
	Steps            int
	TuningInterval   int
	MaxSamples       int
	Seed             int64
}

// ScenarioWrapper is the gcfg root: one named section, same shape as
// gotetra's PhaseBoundsWrapper/BoundsConfig wrappers.
type ScenarioWrapper struct {
	Scenario ScenarioConfig
}

// CheckInit fills in defaults for everything the file left at its zero
// value and rejects the fields that have no sane default.
func (c *ScenarioConfig) CheckInit() error {
	if c.BoxLen <= 0 {
		return fmt.Errorf("scenario: BoxLen must be positive, got %v", c.BoxLen)
	}
	if c.NumParticles <= 0 {
		return fmt.Errorf("scenario: NumParticles must be positive, got %v", c.NumParticles)
	}
	if c.Cutoff <= 0 {
		return fmt.Errorf("scenario: Cutoff must be positive, got %v", c.Cutoff)
	}
	if c.SkinPerTimestep == 0 {
		c.SkinPerTimestep = 0.2 * c.Cutoff
	}
	if c.RebuildFrequency == 0 {
		c.RebuildFrequency = 10
	}
	if c.ClusterSize == 0 {
		c.ClusterSize = 4
	}
	if c.Steps == 0 {
		c.Steps = 50
	}
	if c.TuningInterval == 0 {
		c.TuningInterval = 20
	}
	if c.MaxSamples == 0 {
		c.MaxSamples = 3
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	return nil
}

// ReadScenario reads and validates a scenario file at path.
func ReadScenario(path string) (*ScenarioConfig, error) {
	w := &ScenarioWrapper{}
	if err := gcfg.ReadFileInto(w, path); err != nil {
		return nil, fmt.Errorf("reading scenario file %q: %w", path, err)
	}
	if err := w.Scenario.CheckInit(); err != nil {
		return nil, err
	}
	return &w.Scenario, nil
}

// ExampleScenarioFile is printed by "mdsim --example-config", mirroring
// gotetra's io.ExampleDensityFile/ExampleBoundsFile convention of shipping a
// runnable sample alongside the parser.
const ExampleScenarioFile = `[Scenario]
BoxLen = 20
NumParticles = 4000
Cutoff = 2.5
SkinPerTimestep = 0.5
RebuildFrequency = 10
ClusterSize = 4
Steps = 50
TuningInterval = 20
MaxSamples = 3
Seed = 1
`
