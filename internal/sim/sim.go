// Package sim wires the climate, thermal, and aggregation stages into the
// single-run pipeline: parameters in, a year of physics and its summaries
// out. The pipeline is synchronous and owns no state beyond its outputs.
package sim

import (
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/aggregate"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/climate"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/models"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/params"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/thermal"
)

// DefaultSeed keeps runs reproducible unless the caller asks otherwise.
const DefaultSeed = 42

// Options selects the inputs of one simulation run.
type Options struct {
	Params *params.Set
	Year   int
	Seed   uint64
}

// Result is the complete output of one run.
type Result struct {
	Params  *params.Set
	Year    int
	Seed    uint64
	Climate []models.DailyClimate
	Days    []models.DailyResult
	Summary *aggregate.Summary
}

// Run executes the full pipeline for one year.
func Run(opts Options) (*Result, error) {
	clim := climate.Generate(opts.Params, opts.Year, opts.Seed)
	days, err := thermal.Compute(opts.Params, clim)
	if err != nil {
		return nil, err
	}
	return &Result{
		Params:  opts.Params,
		Year:    opts.Year,
		Seed:    opts.Seed,
		Climate: clim,
		Days:    days,
		Summary: aggregate.Summarize(opts.Params, days),
	}, nil
}
