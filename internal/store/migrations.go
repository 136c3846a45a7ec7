package store

import "fmt"

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TIMESTAMP NOT NULL,
		seed INTEGER NOT NULL,
		year INTEGER NOT NULL,
		params_json TEXT NOT NULL,
		total_production REAL NOT NULL,
		mean_gor REAL NOT NULL,
		mean_radiation REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS daily_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		day_of_year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		day INTEGER NOT NULL,
		radiation REAL NOT NULL,
		ambient_temp REAL NOT NULL,
		humidity REAL NOT NULL,
		wind_speed REAL NOT NULL,
		water_temp REAL NOT NULL,
		glass_temp REAL NOT NULL,
		conduction_loss REAL NOT NULL,
		convection_loss REAL NOT NULL,
		radiation_loss REAL NOT NULL,
		total_loss REAL NOT NULL,
		solar_input_j REAL NOT NULL,
		absorbed_j REAL NOT NULL,
		lost_j REAL NOT NULL,
		useful_j REAL NOT NULL,
		evaporation_j REAL NOT NULL,
		production_liters REAL NOT NULL,
		gor REAL NOT NULL,
		efficiency_pct REAL NOT NULL,
		UNIQUE(run_id, day_of_year)
	)`,
	`CREATE TABLE IF NOT EXISTS monthly_summaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		month INTEGER NOT NULL,
		name TEXT NOT NULL,
		production_liters REAL NOT NULL,
		mean_radiation REAL NOT NULL,
		mean_gor REAL NOT NULL,
		mean_efficiency REAL NOT NULL,
		mean_water_temp REAL NOT NULL,
		mean_ambient_temp REAL NOT NULL,
		share_pct REAL NOT NULL,
		UNIQUE(run_id, month)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_run ON daily_results(run_id, day_of_year)`,
}

// Migrate applies the schema. Statements are idempotent, so this is safe to
// run on every open.
func (s *Store) Migrate() error {
	for i, stmt := range migrations {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
