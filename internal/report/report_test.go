package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/aggregate"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/climate"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/params"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/thermal"
)

func testData(t *testing.T) *Data {
	t.Helper()
	p, err := params.New(params.Defaults())
	if err != nil {
		t.Fatalf("build parameters: %v", err)
	}
	days, err := thermal.Compute(p, climate.Generate(p, 2024, 42))
	if err != nil {
		t.Fatalf("compute year: %v", err)
	}
	return NewData(p, 2024, days, aggregate.Summarize(p, days))
}

func TestWriteJS(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJS(&buf, testData(t)); err != nil {
		t.Fatalf("WriteJS: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "const datosSimulacion = ") {
		t.Errorf("output does not start with the data assignment: %.60q", out)
	}
	for _, want := range []string{
		`"produccion"`, `"radiacion"`, `"eficiencia"`, `"estadisticas"`,
		"function formatearNumero", "function formatearFecha",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
}

func TestWriteMarkdown(t *testing.T) {
	d := testData(t)
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, d); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Informe Ejecutivo",
		"## Indicadores clave",
		"## Rendimiento estacional",
		"## Balance energético",
		"## Recomendaciones",
		d.Annual.BestSeason,
		d.Annual.BestMonth,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, testData(t)); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		"Reporte Anual",
		"datos_simulacion.js",
		"Producción mensual",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestSeasonsByProduction_Ranked(t *testing.T) {
	d := testData(t)
	ranked := d.SeasonsByProduction()
	if len(ranked) != 4 {
		t.Fatalf("got %d seasons, want 4", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].ProductionLiters > ranked[i-1].ProductionLiters {
			t.Errorf("seasons not sorted: %q (%v) after %q (%v)",
				ranked[i].Season, ranked[i].ProductionLiters,
				ranked[i-1].Season, ranked[i-1].ProductionLiters)
		}
	}
	// The source slice must keep its calendar order.
	if d.Seasonal[0].Months != [3]int{12, 1, 2} {
		t.Errorf("source seasonal order mutated: %v", d.Seasonal[0].Months)
	}
}

func TestMonthRatio_GuardsIdleWorstMonth(t *testing.T) {
	d := testData(t)
	d.Annual.BestMonthLiters = 2
	d.Annual.WorstMonthLiters = 0

	if got := d.MonthRatio(); got != 2000 {
		t.Errorf("MonthRatio with idle worst month = %v, want 2000", got)
	}
}

func TestEnergyShares(t *testing.T) {
	d := testData(t)
	lost, useful := d.LossSharePct(), d.UsefulSharePct()
	if lost < 0 || useful < 0 || lost+useful > 100.000001 {
		t.Errorf("shares lost=%v useful=%v inconsistent", lost, useful)
	}

	d.Annual.SolarInputJ = 0
	if d.LossSharePct() != 0 || d.UsefulSharePct() != 0 {
		t.Error("shares with zero input should be 0")
	}
}

func TestRecommendations_NeverEmpty(t *testing.T) {
	d := testData(t)
	if len(d.Recommendations()) == 0 {
		t.Error("Recommendations returned an empty list")
	}

	d.Annual.MeanGOR = 0.1
	found := false
	for _, r := range d.Recommendations() {
		if strings.Contains(r, "GOR") {
			found = true
		}
	}
	if !found {
		t.Error("low GOR should trigger a GOR recommendation")
	}
}
