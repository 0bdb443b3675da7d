// Package vegca binds a parameter table to the typed inputs of the vegetation
// cellular automaton tutorial model.
package vegca

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/picogrid/vegca-inputs/pkg/params"
)

// Inputs holds the typed tutorial parameters
type Inputs struct {
	Runs          RunLengths
	Cover         InitialCover
	DrySeason     StormStats
	WetSeason     StormStats
	Monsoon       MonsoonWindow
	PETMethod     string
	Grass         PFTRules
	Shrub         PFTRules
	Tree          PFTRules
	ShrubSeedling PFTRules
	TreeSeedling  PFTRules
}

// RunLengths are storm counts for the tutorial's three runs
type RunLengths struct {
	Short    int
	LongDEM  int
	LongFlat int
}

// InitialCover holds initial fractions of cells per plant functional type
type InitialCover struct {
	Bare  float64
	Grass float64
	Shrub float64
	Tree  float64
}

// StormStats are Poisson storm statistics for one season
type StormStats struct {
	MeanStorm      float64 // hours
	MeanInterstorm float64 // hours
	MeanDepth      float64 // mm
}

// MonsoonWindow bounds the wet season in days of the year
type MonsoonWindow struct {
	Start int
	End   int
}

// PFTRules are cellular automaton establishment and mortality parameters. Fields a
// plant type does not use are zero.
type PFTRules struct {
	MaxEstablishment float64 // Pemax
	DroughtThreshold float64 // Theta
	Mortality        float64 // Pmb
	MaxAge           int     // tpmax, years
}

type binder struct {
	t    *params.Table
	errs []error
}

func (b *binder) floatParam(name string) float64 {
	v, err := b.t.Float(name)
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return v
}

func (b *binder) intParam(name string) int {
	v, err := b.t.Int(name)
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return v
}

func (b *binder) stringParam(name string) string {
	v, err := b.t.String(name)
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return v
}

// FromTable reads the tutorial parameters from t. Every missing or mistyped
// parameter is reported, not just the first.
func FromTable(t *params.Table) (*Inputs, error) {
	b := &binder{t: t}

	in := &Inputs{
		Runs: RunLengths{
			Short:    b.intParam("n_short"),
			LongDEM:  b.intParam("n_long_DEM"),
			LongFlat: b.intParam("n_long_flat"),
		},
		Cover: InitialCover{
			Bare:  b.floatParam("percent_bare_initial"),
			Grass: b.floatParam("percent_grass_initial"),
			Shrub: b.floatParam("percent_shrub_initial"),
			Tree:  b.floatParam("percent_tree_initial"),
		},
		DrySeason: StormStats{
			MeanStorm:      b.floatParam("mean_storm_dry"),
			MeanInterstorm: b.floatParam("mean_interstorm_dry"),
			MeanDepth:      b.floatParam("mean_storm_depth_dry"),
		},
		WetSeason: StormStats{
			MeanStorm:      b.floatParam("mean_storm_wet"),
			MeanInterstorm: b.floatParam("mean_interstorm_wet"),
			MeanDepth:      b.floatParam("mean_storm_depth_wet"),
		},
		Monsoon: MonsoonWindow{
			Start: b.intParam("doy__start_of_monsoon"),
			End:   b.intParam("doy__end_of_monsoon"),
		},
		PETMethod: b.stringParam("PET_method"),
		Grass: PFTRules{
			MaxEstablishment: b.floatParam("Pemaxg"),
			DroughtThreshold: b.floatParam("ThetaGrass"),
			Mortality:        b.floatParam("PmbGrass"),
		},
		Shrub: PFTRules{
			MaxEstablishment: b.floatParam("Pemaxsh"),
			DroughtThreshold: b.floatParam("ThetaShrub"),
			Mortality:        b.floatParam("PmbShrub"),
			MaxAge:           b.intParam("tpmaxShrub"),
		},
		Tree: PFTRules{
			MaxEstablishment: b.floatParam("Pemaxtr"),
			DroughtThreshold: b.floatParam("ThetaTree"),
			Mortality:        b.floatParam("PmbTree"),
			MaxAge:           b.intParam("tpmaxTree"),
		},
		ShrubSeedling: PFTRules{
			DroughtThreshold: b.floatParam("ThetaShrubSeedling"),
			Mortality:        b.floatParam("PmbShrubSeedling"),
			MaxAge:           b.intParam("tpmaxShrubSeedling"),
		},
		TreeSeedling: PFTRules{
			DroughtThreshold: b.floatParam("ThetaTreeSeedling"),
			Mortality:        b.floatParam("PmbTreeSeedling"),
			MaxAge:           b.intParam("tpmaxTreeSeedling"),
		},
	}

	if len(b.errs) > 0 {
		return nil, fmt.Errorf("binding inputs: %w", errors.Join(b.errs...))
	}
	return in, nil
}

// Validate checks rules that span several parameters
func (in *Inputs) Validate() error {
	var errs []error

	if in.Runs.Short <= 0 || in.Runs.LongDEM <= 0 || in.Runs.LongFlat <= 0 {
		errs = append(errs, fmt.Errorf("storm counts must be positive"))
	}

	cover := []float64{in.Cover.Bare, in.Cover.Grass, in.Cover.Shrub, in.Cover.Tree}
	sum := 0.0
	for _, c := range cover {
		if c < 0 || c > 1 {
			errs = append(errs, fmt.Errorf("initial cover fractions must be between 0.0 and 1.0"))
			break
		}
		sum += c
	}
	if math.Abs(sum-1) > 1e-6 {
		errs = append(errs, fmt.Errorf("initial cover fractions must sum to 1.0 (got %g)", sum))
	}

	for _, s := range []struct {
		name  string
		stats StormStats
	}{{"dry", in.DrySeason}, {"wet", in.WetSeason}} {
		if s.stats.MeanStorm <= 0 || s.stats.MeanInterstorm <= 0 || s.stats.MeanDepth <= 0 {
			errs = append(errs, fmt.Errorf("%s season storm statistics must be positive", s.name))
		}
	}

	if in.Monsoon.Start < 1 || in.Monsoon.End > 365 || in.Monsoon.Start >= in.Monsoon.End {
		errs = append(errs, fmt.Errorf("monsoon must start before it ends within days 1..365 (got %d..%d)", in.Monsoon.Start, in.Monsoon.End))
	}

	for _, p := range []struct {
		name  string
		rules PFTRules
	}{
		{"grass", in.Grass},
		{"shrub", in.Shrub},
		{"tree", in.Tree},
		{"shrub seedling", in.ShrubSeedling},
		{"tree seedling", in.TreeSeedling},
	} {
		if !isProbability(p.rules.MaxEstablishment) || !isProbability(p.rules.DroughtThreshold) || !isProbability(p.rules.Mortality) {
			errs = append(errs, fmt.Errorf("%s probabilities must be between 0.0 and 1.0", p.name))
		}
		if p.rules.MaxAge < 0 {
			errs = append(errs, fmt.Errorf("%s maximum age must not be negative", p.name))
		}
	}

	return errors.Join(errs...)
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}

// String returns a human-readable summary of the inputs
func (in *Inputs) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, `Runs:
  Short: %d storms
  Long (DEM): %d storms
  Long (flat): %d storms

Initial Cover:
  Bare: %.2f  Grass: %.2f  Shrub: %.2f  Tree: %.2f

Storms:
  Dry season: %.3f h storms every %.2f h, %.2f mm
  Wet season: %.3f h storms every %.2f h, %.2f mm
  Monsoon: day %d to %d

PET Method: %s

Cellular Automaton:
`,
		in.Runs.Short, in.Runs.LongDEM, in.Runs.LongFlat,
		in.Cover.Bare, in.Cover.Grass, in.Cover.Shrub, in.Cover.Tree,
		in.DrySeason.MeanStorm, in.DrySeason.MeanInterstorm, in.DrySeason.MeanDepth,
		in.WetSeason.MeanStorm, in.WetSeason.MeanInterstorm, in.WetSeason.MeanDepth,
		in.Monsoon.Start, in.Monsoon.End,
		in.PETMethod,
	)

	for _, p := range []struct {
		name  string
		rules PFTRules
	}{
		{"Grass", in.Grass},
		{"Shrub", in.Shrub},
		{"Tree", in.Tree},
		{"Shrub seedling", in.ShrubSeedling},
		{"Tree seedling", in.TreeSeedling},
	} {
		fmt.Fprintf(&b, "  %-15s Pemax %.2f  Theta %.2f  Pmb %.2f  max age %d\n",
			p.name, p.rules.MaxEstablishment, p.rules.DroughtThreshold, p.rules.Mortality, p.rules.MaxAge)
	}

	return b.String()
}
