package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/api"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/metrics"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/models"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/params"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/plot"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/report"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/sim"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/store"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/thermal"
)

var cli struct {
	EnvFile kongdotenv.ENVFileConfig `kong:"name='env-file',optional,help='Optional .env file with DESALSIM_* defaults.'"`

	Run    runCmd    `cmd:"" default:"withargs" help:"Simulate a full year and write the result files."`
	Params paramsCmd `cmd:"" help:"Print the effective parameters and exit."`
	Serve  serveCmd  `cmd:"" help:"Serve persisted results over HTTP."`
}

type runCmd struct {
	Config     string `short:"c" env:"DESALSIM_CONFIG" help:"JSON parameter file overriding the defaults."`
	Year       int    `env:"DESALSIM_YEAR" default:"2024" help:"Calendar year to simulate."`
	Seed       uint64 `env:"DESALSIM_SEED" default:"42" help:"Climate generator seed."`
	OutDir     string `short:"o" env:"DESALSIM_OUT_DIR" default:"resultados" help:"Directory for result files."`
	DB         string `env:"DESALSIM_DB" help:"SQLite database to persist the run into (optional)."`
	Plots      bool   `default:"true" negatable:"" help:"Write the PNG charts."`
	Report     bool   `short:"i" default:"true" negatable:"" help:"Write the executive report and dashboard."`
	SaveParams bool   `short:"g" help:"Also save the effective parameters as JSON."`
}

type paramsCmd struct {
	Config string `short:"c" env:"DESALSIM_CONFIG" help:"JSON parameter file overriding the defaults."`
}

type serveCmd struct {
	DB   string `env:"DESALSIM_DB" default:"data/desalsim.db" help:"SQLite database with persisted runs."`
	Addr string `env:"DESALSIM_ADDR" default:":8080" help:"Listen address."`
}

func (c *runCmd) Run() error {
	p, err := params.Load(c.Config)
	if err != nil {
		return err
	}

	started := time.Now()
	result, err := sim.Run(sim.Options{Params: p, Year: c.Year, Seed: c.Seed})
	if err != nil {
		metrics.SimulationRunsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.SimulationRunsTotal.WithLabelValues("ok").Inc()
	metrics.SimulationDuration.Observe(time.Since(started).Seconds())

	k := result.Summary.Annual
	metrics.RecordRun(k.TotalProductionLiters, k.MeanGOR, k.MeanRadiation)
	log.Printf("Simulated %d: %.2f L produced, mean GOR %.3f, mean radiation %.1f W/m²",
		c.Year, k.TotalProductionLiters, k.MeanGOR, k.MeanRadiation)

	if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := store.WriteDailyCSV(filepath.Join(c.OutDir, "datos_desalinizador_anual.csv"), result.Days); err != nil {
		return err
	}
	if err := store.WriteMonthlyCSV(filepath.Join(c.OutDir, "datos_desalinizador_mensual.csv"), result.Summary.Monthly); err != nil {
		return err
	}

	data := report.NewData(p, c.Year, result.Days, result.Summary)

	if c.Report {
		if err := writeFile(filepath.Join(c.OutDir, "datos_simulacion.js"), func(f *os.File) error {
			return report.WriteJS(f, data)
		}); err != nil {
			return err
		}
		if err := writeFile(filepath.Join(c.OutDir, "informe_ejecutivo.md"), func(f *os.File) error {
			return report.WriteMarkdown(f, data)
		}); err != nil {
			return err
		}
		if err := writeFile(filepath.Join(c.OutDir, "reporte_anual_desalinizador.html"), func(f *os.File) error {
			return report.WriteHTML(f, data)
		}); err != nil {
			return err
		}
	}

	if c.Plots {
		if err := writeFile(filepath.Join(c.OutDir, "resultados_desalinizador_anual.png"), func(f *os.File) error {
			return plot.WriteDailyChart(f, c.Year, result.Days)
		}); err != nil {
			return err
		}
		if err := writeFile(filepath.Join(c.OutDir, "produccion_mensual_desalinizador.png"), func(f *os.File) error {
			return plot.WriteMonthlyChart(f, c.Year, result.Summary.Monthly)
		}); err != nil {
			return err
		}
	}

	if c.SaveParams {
		path := filepath.Join(c.OutDir, fmt.Sprintf("parametros_%s.json", time.Now().Format("20060102_150405")))
		if err := p.Save(path); err != nil {
			return err
		}
		log.Printf("Parameters saved to %s", path)
	}

	if c.DB != "" {
		if err := persistRun(c.DB, result); err != nil {
			return err
		}
	}

	log.Printf("Result files written to %s", c.OutDir)
	return nil
}

func persistRun(dbPath string, result *sim.Result) error {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	paramsJSON, err := json.Marshal(result.Params.Config)
	if err != nil {
		return fmt.Errorf("encode parameters: %w", err)
	}

	k := result.Summary.Annual
	run := models.RunRecord{
		CreatedAt:       time.Now(),
		Seed:            result.Seed,
		Year:            result.Year,
		ParamsJSON:      string(paramsJSON),
		TotalProduction: k.TotalProductionLiters,
		MeanGOR:         k.MeanGOR,
		MeanRadiation:   k.MeanRadiation,
	}

	runID, err := st.SaveRun(run, result.Days, result.Summary.Monthly)
	if err != nil {
		return err
	}
	metrics.RunsPersisted.Inc()
	log.Printf("Run persisted as id %d in %s", runID, dbPath)
	return nil
}

func (c *paramsCmd) Run() error {
	p, err := params.Load(c.Config)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func (c *serveCmd) Run() error {
	db, err := store.Open(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return api.NewServer(st, c.Addr).Run(ctx)
}

func writeFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("desalsim"),
		kong.Description("Thermodynamic simulator of a solar desalinization prototype."),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		var cfgErr *params.ConfigError
		var physErr *thermal.PhysicsError
		switch {
		case errors.As(err, &cfgErr):
			log.Printf("Invalid configuration: %v", err)
			os.Exit(2)
		case errors.As(err, &physErr):
			log.Printf("Invalid physical constant: %v", err)
			os.Exit(2)
		default:
			log.Fatalf("Error: %v", err)
		}
	}
}
