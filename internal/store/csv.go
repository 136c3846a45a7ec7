package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/models"
)

// Column layouts match the historical CSV outputs so downstream spreadsheets
// keep working.

var dailyHeader = []string{
	"fecha", "mes", "dia", "dia_del_año",
	"radiacion_Wm2", "temp_ambiente_C", "humedad_relativa", "velocidad_viento",
	"temp_agua_C", "temp_vidrio_C", "perdida_total_W",
	"energia_solar_kJ", "energia_util_kJ", "energia_evaporacion_kJ",
	"produccion_litros", "GOR", "eficiencia_termica",
}

var monthlyHeader = []string{
	"mes", "nombre_mes", "produccion_litros", "radiacion_Wm2", "GOR",
	"eficiencia_termica", "temp_agua_C", "porcentaje_anual",
}

// WriteDailyCSV writes the full daily series to path.
func WriteDailyCSV(path string, days []models.DailyResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(dailyHeader); err != nil {
		return err
	}
	for _, d := range days {
		row := []string{
			d.Date.Format("2006-01-02"),
			strconv.Itoa(d.Month),
			strconv.Itoa(d.Day),
			strconv.Itoa(d.DayOfYear),
			ftoa(d.Radiation, 2),
			ftoa(d.AmbientTempC, 2),
			ftoa(d.Humidity, 1),
			ftoa(d.WindSpeed, 2),
			ftoa(d.WaterTempC, 2),
			ftoa(d.GlassTempC, 2),
			ftoa(d.TotalLossW, 2),
			ftoa(d.SolarInputJ/1000, 2),
			ftoa(d.UsefulJ/1000, 2),
			ftoa(d.EvaporationJ/1000, 2),
			ftoa(d.ProductionLiters, 4),
			ftoa(d.GOR, 4),
			ftoa(d.EfficiencyPct, 2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteMonthlyCSV writes the monthly summary table to path.
func WriteMonthlyCSV(path string, months []models.MonthlySummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(monthlyHeader); err != nil {
		return err
	}
	for _, m := range months {
		row := []string{
			strconv.Itoa(m.Month),
			m.Name,
			ftoa(m.ProductionLiters, 2),
			ftoa(m.MeanRadiation, 2),
			ftoa(m.MeanGOR, 4),
			ftoa(m.MeanEfficiency, 2),
			ftoa(m.MeanWaterTempC, 2),
			ftoa(m.SharePct, 1),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func ftoa(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
