// Package report renders the run outputs for human consumption: the data
// asset consumed by the static HTML dashboard, a Markdown executive summary,
// and the dashboard page itself. It receives plain numeric records and has
// no influence on the simulation.
package report

import (
	"sort"
	"time"

	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/aggregate"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/models"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/params"
)

// Data is everything the renderers need from a finished run.
type Data struct {
	GeneratedAt time.Time
	Params      *params.Set
	Year        int
	Days        []models.DailyResult
	Monthly     []models.MonthlySummary
	Seasonal    []models.SeasonalSummary
	Annual      models.AnnualKPIs
}

// NewData assembles report data from a run summary.
func NewData(p *params.Set, year int, days []models.DailyResult, summary *aggregate.Summary) *Data {
	return &Data{
		GeneratedAt: time.Now(),
		Params:      p,
		Year:        year,
		Days:        days,
		Monthly:     summary.Monthly,
		Seasonal:    summary.Seasonal,
		Annual:      summary.Annual,
	}
}

// SeasonsByProduction returns the seasonal summaries ranked best-first.
func (d *Data) SeasonsByProduction() []models.SeasonalSummary {
	ranked := make([]models.SeasonalSummary, len(d.Seasonal))
	copy(ranked, d.Seasonal)
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].ProductionLiters > ranked[j].ProductionLiters
	})
	return ranked
}

// MonthRatio is the best-to-worst monthly production ratio, guarded against
// an idle worst month.
func (d *Data) MonthRatio() float64 {
	worst := d.Annual.WorstMonthLiters
	if worst < 0.001 {
		worst = 0.001
	}
	return d.Annual.BestMonthLiters / worst
}

// LossSharePct is the fraction of incident solar energy lost as heat.
func (d *Data) LossSharePct() float64 {
	if d.Annual.SolarInputJ <= 0 {
		return 0
	}
	lost := d.Annual.SolarInputJ - d.Annual.UsefulJ
	return lost / d.Annual.SolarInputJ * 100
}

// UsefulSharePct is the fraction of incident solar energy turned useful.
func (d *Data) UsefulSharePct() float64 {
	if d.Annual.SolarInputJ <= 0 {
		return 0
	}
	return d.Annual.UsefulJ / d.Annual.SolarInputJ * 100
}
