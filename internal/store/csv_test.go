package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/models"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return records
}

func TestWriteDailyCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.csv")
	days := []models.DailyResult{
		{
			Date:             time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
			DayOfYear:        65,
			Month:            3,
			Day:              5,
			Radiation:        640.5,
			AmbientTempC:     14.2,
			Humidity:         55,
			WindSpeed:        2.1,
			WaterTempC:       41.7,
			ProductionLiters: 0.031,
			GOR:              0.38,
			EfficiencyPct:    26.4,
		},
	}

	if err := WriteDailyCSV(path, days); err != nil {
		t.Fatalf("WriteDailyCSV: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(records))
	}

	header := records[0]
	if header[0] != "fecha" {
		t.Errorf("first column = %q, want fecha", header[0])
	}
	found := false
	for _, col := range header {
		if col == "produccion_litros" {
			found = true
		}
	}
	if !found {
		t.Errorf("header missing produccion_litros: %v", header)
	}
	if len(records[1]) != len(header) {
		t.Errorf("data row has %d fields, header %d", len(records[1]), len(header))
	}
	if records[1][0] != "2024-03-05" {
		t.Errorf("fecha = %q, want 2024-03-05", records[1][0])
	}
}

func TestWriteMonthlyCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monthly.csv")
	months := []models.MonthlySummary{
		{Month: 1, Name: "Enero", ProductionLiters: 0.2, MeanRadiation: 210, MeanGOR: 0.31, SharePct: 4.5},
		{Month: 7, Name: "Julio", ProductionLiters: 1.4, MeanRadiation: 820, MeanGOR: 0.55, SharePct: 22.0},
	}

	if err := WriteMonthlyCSV(path, months); err != nil {
		t.Fatalf("WriteMonthlyCSV: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(records))
	}
	if records[0][0] != "mes" || records[0][1] != "nombre_mes" {
		t.Errorf("header = %v, want mes, nombre_mes leading", records[0])
	}
	if records[2][1] != "Julio" {
		t.Errorf("second row month = %q, want Julio", records[2][1])
	}
}
