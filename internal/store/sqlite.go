package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/models"
)

// Store persists simulation runs and their daily/monthly tables in SQLite.
// The aggregated tables are denormalized copies for querying; the daily
// series remains the source of truth.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens (creating if needed) a SQLite database at path and applies the
// usual pragmas.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	return db, nil
}

// SaveRun stores a run with its daily results and monthly summaries in one
// transaction and returns the new run ID.
func (s *Store) SaveRun(run models.RunRecord, days []models.DailyResult, monthly []models.MonthlySummary) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO runs (created_at, seed, year, params_json, total_production, mean_gor, mean_radiation)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, time.Now().UTC(), int64(run.Seed), run.Year, run.ParamsJSON, run.TotalProduction, run.MeanGOR, run.MeanRadiation)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	dayStmt, err := tx.Prepare(`
		INSERT INTO daily_results (
			run_id, date, day_of_year, month, day,
			radiation, ambient_temp, humidity, wind_speed,
			water_temp, glass_temp,
			conduction_loss, convection_loss, radiation_loss, total_loss,
			solar_input_j, absorbed_j, lost_j, useful_j, evaporation_j,
			production_liters, gor, efficiency_pct
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare daily insert: %w", err)
	}
	defer dayStmt.Close()

	for _, d := range days {
		if _, err := dayStmt.Exec(
			runID, d.Date.Format("2006-01-02"), d.DayOfYear, d.Month, d.Day,
			d.Radiation, d.AmbientTempC, d.Humidity, d.WindSpeed,
			d.WaterTempC, d.GlassTempC,
			d.ConductionLossW, d.ConvectionLossW, d.RadiationLossW, d.TotalLossW,
			d.SolarInputJ, d.AbsorbedJ, d.LostJ, d.UsefulJ, d.EvaporationJ,
			d.ProductionLiters, d.GOR, d.EfficiencyPct,
		); err != nil {
			return 0, fmt.Errorf("insert day %d: %w", d.DayOfYear, err)
		}
	}

	for _, m := range monthly {
		if _, err := tx.Exec(`
			INSERT INTO monthly_summaries (
				run_id, month, name, production_liters, mean_radiation, mean_gor,
				mean_efficiency, mean_water_temp, mean_ambient_temp, share_pct
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, m.Month, m.Name, m.ProductionLiters, m.MeanRadiation, m.MeanGOR,
			m.MeanEfficiency, m.MeanWaterTempC, m.MeanAmbientTempC, m.SharePct,
		); err != nil {
			return 0, fmt.Errorf("insert month %d: %w", m.Month, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// LatestRun returns the most recently stored run, or nil when the database
// is empty.
func (s *Store) LatestRun() (*models.RunRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, seed, year, params_json, total_production, mean_gor, mean_radiation
		FROM runs
		ORDER BY id DESC
		LIMIT 1
	`)
	var run models.RunRecord
	var seed int64
	err := row.Scan(&run.ID, &run.CreatedAt, &seed, &run.Year, &run.ParamsJSON,
		&run.TotalProduction, &run.MeanGOR, &run.MeanRadiation)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	run.Seed = uint64(seed)
	return &run, nil
}

// RunDays returns the full daily series of a run in chronological order.
func (s *Store) RunDays(runID int64) ([]models.DailyResult, error) {
	rows, err := s.db.Query(`
		SELECT date, day_of_year, month, day,
			radiation, ambient_temp, humidity, wind_speed,
			water_temp, glass_temp,
			conduction_loss, convection_loss, radiation_loss, total_loss,
			solar_input_j, absorbed_j, lost_j, useful_j, evaporation_j,
			production_liters, gor, efficiency_pct
		FROM daily_results
		WHERE run_id = ?
		ORDER BY day_of_year ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []models.DailyResult
	for rows.Next() {
		var d models.DailyResult
		var date string
		if err := rows.Scan(&date, &d.DayOfYear, &d.Month, &d.Day,
			&d.Radiation, &d.AmbientTempC, &d.Humidity, &d.WindSpeed,
			&d.WaterTempC, &d.GlassTempC,
			&d.ConductionLossW, &d.ConvectionLossW, &d.RadiationLossW, &d.TotalLossW,
			&d.SolarInputJ, &d.AbsorbedJ, &d.LostJ, &d.UsefulJ, &d.EvaporationJ,
			&d.ProductionLiters, &d.GOR, &d.EfficiencyPct,
		); err != nil {
			return nil, err
		}
		d.Date, _ = time.Parse("2006-01-02", date)
		d.WaterTempK = d.WaterTempC + 273.15
		days = append(days, d)
	}
	return days, rows.Err()
}

// RunMonthly returns the monthly summaries of a run ordered by month.
func (s *Store) RunMonthly(runID int64) ([]models.MonthlySummary, error) {
	rows, err := s.db.Query(`
		SELECT month, name, production_liters, mean_radiation, mean_gor,
			mean_efficiency, mean_water_temp, mean_ambient_temp, share_pct
		FROM monthly_summaries
		WHERE run_id = ?
		ORDER BY month ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []models.MonthlySummary
	for rows.Next() {
		var m models.MonthlySummary
		if err := rows.Scan(&m.Month, &m.Name, &m.ProductionLiters, &m.MeanRadiation,
			&m.MeanGOR, &m.MeanEfficiency, &m.MeanWaterTempC, &m.MeanAmbientTempC, &m.SharePct,
		); err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, rows.Err()
}
