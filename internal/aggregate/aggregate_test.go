package aggregate

import (
	"math"
	"testing"
	"time"

	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/models"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/params"
)

func testParams(t *testing.T, hemisphere string) *params.Set {
	t.Helper()
	cfg := params.Defaults()
	cfg.Operating.Hemisphere = hemisphere
	p, err := params.New(cfg)
	if err != nil {
		t.Fatalf("build parameters: %v", err)
	}
	return p
}

// yearOf builds a synthetic daily series with one record per day and simple
// linear values keyed to the month.
func yearOf(year int, production func(month int) float64) []models.DailyResult {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var out []models.DailyResult
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		m := int(d.Month())
		out = append(out, models.DailyResult{
			Date:             d,
			DayOfYear:        d.YearDay(),
			Month:            m,
			Day:              d.Day(),
			Radiation:        float64(100 * m),
			AmbientTempC:     float64(m),
			Humidity:         50,
			ProductionLiters: production(m),
			GOR:              0.2,
			TotalLossW:       10,
			SolarInputJ:      1000,
			UsefulJ:          400,
			EvaporationJ:     300,
		})
	}
	return out
}

func TestSummarize_MonthlySharesSumToHundred(t *testing.T) {
	p := testParams(t, "norte")
	days := yearOf(2023, func(m int) float64 { return float64(m) })

	s := Summarize(p, days)
	if len(s.Monthly) != 12 {
		t.Fatalf("got %d monthly summaries, want 12", len(s.Monthly))
	}

	var total float64
	for _, m := range s.Monthly {
		total += m.SharePct
	}
	if math.Abs(total-100) > 1e-6 {
		t.Errorf("monthly shares sum to %v, want 100", total)
	}

	var seasonTotal float64
	for _, ss := range s.Seasonal {
		seasonTotal += ss.SharePct
	}
	if math.Abs(seasonTotal-100) > 1e-6 {
		t.Errorf("seasonal shares sum to %v, want 100", seasonTotal)
	}
}

func TestSummarize_ZeroProductionYear(t *testing.T) {
	p := testParams(t, "norte")
	days := yearOf(2023, func(int) float64 { return 0 })

	s := Summarize(p, days)
	for _, m := range s.Monthly {
		if m.SharePct != 0 {
			t.Errorf("%s: share %v with zero production", m.Name, m.SharePct)
		}
	}
	if s.Annual.TotalProductionLiters != 0 {
		t.Errorf("TotalProductionLiters = %v, want 0", s.Annual.TotalProductionLiters)
	}
	// Production is constant (zero), so both correlations are undefined and
	// must come back as 0 rather than NaN.
	if s.Annual.CorrRadiationProd != 0 || s.Annual.CorrHumidityProd != 0 {
		t.Errorf("correlations = %v, %v; want 0, 0",
			s.Annual.CorrRadiationProd, s.Annual.CorrHumidityProd)
	}
}

func TestSummarize_BestAndWorstMonth(t *testing.T) {
	p := testParams(t, "norte")
	days := yearOf(2023, func(m int) float64 {
		if m == 7 {
			return 3
		}
		if m == 1 {
			return 0.1
		}
		return 1
	})

	s := Summarize(p, days)
	if s.Annual.BestMonth != "Julio" {
		t.Errorf("BestMonth = %q, want Julio", s.Annual.BestMonth)
	}
	if s.Annual.WorstMonth != "Enero" {
		t.Errorf("WorstMonth = %q, want Enero", s.Annual.WorstMonth)
	}
	if s.Annual.BestSeason != "Verano" {
		t.Errorf("BestSeason = %q, want Verano", s.Annual.BestSeason)
	}
}

func TestSummarize_SeasonLabelsByHemisphere(t *testing.T) {
	days := yearOf(2023, func(m int) float64 { return float64(m) })

	north := Summarize(testParams(t, "norte"), days)
	south := Summarize(testParams(t, "sur"), days)

	labelFor := func(s *Summary, month int) string {
		for _, ss := range s.Seasonal {
			for _, m := range ss.Months {
				if m == month {
					return ss.Season
				}
			}
		}
		return ""
	}

	if got := labelFor(north, 1); got != "Invierno" {
		t.Errorf("north January season = %q, want Invierno", got)
	}
	if got := labelFor(south, 1); got != "Verano" {
		t.Errorf("south January season = %q, want Verano", got)
	}
	if got := labelFor(north, 7); got != "Verano" {
		t.Errorf("north July season = %q, want Verano", got)
	}
	if got := labelFor(south, 7); got != "Invierno" {
		t.Errorf("south July season = %q, want Invierno", got)
	}
}

func TestSummarize_CorrelationSign(t *testing.T) {
	p := testParams(t, "norte")
	// Production proportional to month exactly tracks the monthly radiation
	// ramp, so the correlation must be strongly positive.
	days := yearOf(2023, func(m int) float64 { return float64(m) })

	s := Summarize(p, days)
	if s.Annual.CorrRadiationProd < 0.9 {
		t.Errorf("CorrRadiationProd = %v, want > 0.9", s.Annual.CorrRadiationProd)
	}
}

func TestSummarize_HighAndLowProductionDays(t *testing.T) {
	p := testParams(t, "norte")
	days := yearOf(2023, func(m int) float64 {
		if m <= 6 {
			return 0 // below half the mean
		}
		return 2 // above the mean
	})

	s := Summarize(p, days)
	if s.Annual.HighProductionDays == 0 {
		t.Error("HighProductionDays = 0, want > 0")
	}
	if s.Annual.LowProductionDays == 0 {
		t.Error("LowProductionDays = 0, want > 0")
	}
	if s.Annual.HighProductionDays+s.Annual.LowProductionDays > len(days) {
		t.Error("day classifications exceed the series length")
	}
}

func TestShare(t *testing.T) {
	if got := share(25, 100); got != 25 {
		t.Errorf("share(25, 100) = %v, want 25", got)
	}
	if got := share(5, 0); got != 0 {
		t.Errorf("share(5, 0) = %v, want 0", got)
	}
}
