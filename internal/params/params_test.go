package params

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	p, err := New(Defaults())
	if err != nil {
		t.Fatalf("New(Defaults()): %v", err)
	}

	if got, want := p.CaptureArea, 0.45*0.25; math.Abs(got-want) > 1e-9 {
		t.Errorf("CaptureArea = %v, want %v", got, want)
	}
	if got, want := p.WallArea, 2*(0.45+0.25)*0.30; math.Abs(got-want) > 1e-9 {
		t.Errorf("WallArea = %v, want %v", got, want)
	}
	if got, want := p.UsableSeconds, 6*3600.0; got != want {
		t.Errorf("UsableSeconds = %v, want %v", got, want)
	}
	if got, want := p.Conductivity, 205.0; got != want {
		t.Errorf("Conductivity = %v, want %v (aluminio)", got, want)
	}
	if got, want := p.CosIncidence, math.Cos(30*math.Pi/180); math.Abs(got-want) > 1e-9 {
		t.Errorf("CosIncidence = %v, want %v", got, want)
	}
	if p.TotalLossResistance <= 0 {
		t.Errorf("TotalLossResistance = %v, want > 0", p.TotalLossResistance)
	}
	if !p.HemisphereNorthern() {
		t.Error("default hemisphere should be northern")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "zero length",
			mutate:    func(c *Config) { c.Dimensions.Length = 0 },
			wantField: "dimensiones.largo",
		},
		{
			name:      "negative height",
			mutate:    func(c *Config) { c.Dimensions.Height = -0.1 },
			wantField: "dimensiones.altura",
		},
		{
			name:      "absorptivity above one",
			mutate:    func(c *Config) { c.Thermal.Absorptivity = 1.2 },
			wantField: "propiedades_termicas.absorptividad",
		},
		{
			name:      "incidence angle at 90",
			mutate:    func(c *Config) { c.Thermal.IncidenceAngle = 90 },
			wantField: "propiedades_termicas.angulo_incidencia",
		},
		{
			name:      "unknown material",
			mutate:    func(c *Config) { c.Thermal.BoxMaterial = "unobtainium" },
			wantField: "propiedades_termicas.material_caja",
		},
		{
			name:      "boiling below initial",
			mutate:    func(c *Config) { c.Water.BoilingTempK = 280 },
			wantField: "propiedades_agua.temp_ebullicion",
		},
		{
			name:      "usable hours above 24",
			mutate:    func(c *Config) { c.Operating.UsableHours = 25 },
			wantField: "condiciones_operacion.horas_radiacion_util",
		},
		{
			name:      "zero water mass",
			mutate:    func(c *Config) { c.Operating.WaterMass = 0 },
			wantField: "condiciones_operacion.masa_agua",
		},
		{
			name:      "bad hemisphere",
			mutate:    func(c *Config) { c.Operating.Hemisphere = "east" },
			wantField: "condiciones_operacion.hemisferio",
		},
		{
			name:      "latitude out of range",
			mutate:    func(c *Config) { c.Operating.Latitude = 120 },
			wantField: "condiciones_operacion.ubicacion_latitud",
		},
		{
			name:      "zero base radiation",
			mutate:    func(c *Config) { c.Simulation.BaseRadiation = 0 },
			wantField: "parametros_simulacion.radiacion_base",
		},
		{
			name:      "efficiency factor above one",
			mutate:    func(c *Config) { c.Simulation.EfficiencyHigh = 1.5 },
			wantField: "parametros_simulacion.factor_eficiencia_alta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			_, err := New(cfg)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("New() error = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("ConfigError.Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestLoad_OverridesMergeWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	content := `{
		"condiciones_operacion": {
			"masa_agua": 5.0,
			"hemisferio": "sur"
		},
		"parametros_simulacion": {
			"radiacion_base": 700
		}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := p.Operating.WaterMass; got != 5.0 {
		t.Errorf("WaterMass = %v, want 5.0", got)
	}
	if p.HemisphereNorthern() {
		t.Error("hemisphere override to sur not applied")
	}
	if got := p.Simulation.BaseRadiation; got != 700 {
		t.Errorf("BaseRadiation = %v, want 700", got)
	}
	// Untouched keys keep their defaults.
	if got := p.Water.SpecificHeat; got != 4186 {
		t.Errorf("SpecificHeat = %v, want default 4186", got)
	}
	if got := p.Dimensions.Length; got != 0.45 {
		t.Errorf("Length = %v, want default 0.45", got)
	}
}

func TestLoad_RejectsUnknownSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	if err := os.WriteFile(path, []byte(`{"dimensioness": {"largo": 1}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Load() error = %v, want *ConfigError", err)
	}
	if cfgErr.Field != "dimensioness" {
		t.Errorf("ConfigError.Field = %q, want the misspelled section", cfgErr.Field)
	}
}

func TestLoad_RejectsUnknownLeafKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	body := `{"condiciones_operacion": {"maza_agua": 3.0}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Load() error = %v, want *ConfigError", err)
	}
	if cfgErr.Field != "condiciones_operacion.maza_agua" {
		t.Errorf("ConfigError.Field = %q, want the misspelled key path", cfgErr.Field)
	}
}

func TestLoad_AcceptsNewConductivityMaterial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	body := `{
		"conductividades_termicas": {"madera": 0.13},
		"propiedades_termicas": {"material_caja": "madera"}
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if got := p.Conductivity; got != 0.13 {
		t.Errorf("Conductivity = %v, want 0.13 for madera", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("Load() with missing file should fail")
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if got := p.Operating.WaterMass; got != 1.0 {
		t.Errorf("WaterMass = %v, want default 1.0", got)
	}
}

func TestEfficiencyFactor_Bands(t *testing.T) {
	p, err := New(Defaults())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		radiation float64
		want      float64
	}{
		{900, 0.80},
		{800, 0.80},
		{700, 0.70},
		{600, 0.70},
		{500, 0.55},
		{400, 0.55},
		{399, 0.35},
		{0, 0.35},
	}
	for _, tt := range tests {
		if got := p.EfficiencyFactor(tt.radiation); got != tt.want {
			t.Errorf("EfficiencyFactor(%v) = %v, want %v", tt.radiation, got, tt.want)
		}
	}
}

func TestSave_Roundtrip(t *testing.T) {
	p, err := New(Defaults())
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "sub", "saved.json")
	if err := p.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var saved savedParams
	if err := json.Unmarshal(raw, &saved); err != nil {
		t.Fatalf("decode saved file: %v", err)
	}
	if saved.ConfigBase.Operating.WaterMass != p.Operating.WaterMass {
		t.Errorf("saved WaterMass = %v, want %v", saved.ConfigBase.Operating.WaterMass, p.Operating.WaterMass)
	}
	if saved.Derived.CaptureArea != p.CaptureArea {
		t.Errorf("saved CaptureArea = %v, want %v", saved.Derived.CaptureArea, p.CaptureArea)
	}
}
