package params

import (
	"fmt"
	"math"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigError reports a malformed, missing, or out-of-range parameter. Only
// absent optional keys fall back to defaults; invalid values always fail.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

type Hemisphere string

const (
	HemisphereNorth Hemisphere = "norte"
	HemisphereSouth Hemisphere = "sur"
)

// Config mirrors the JSON parameter file. Section and key names match the
// historical file format, so saved configurations stay loadable.
type Config struct {
	Dimensions     Dimensions          `koanf:"dimensiones" json:"dimensiones"`
	Thermal        ThermalProperties   `koanf:"propiedades_termicas" json:"propiedades_termicas"`
	Water          WaterProperties     `koanf:"propiedades_agua" json:"propiedades_agua"`
	Conductivities map[string]float64  `koanf:"conductividades_termicas" json:"conductividades_termicas"`
	Operating      OperatingConditions `koanf:"condiciones_operacion" json:"condiciones_operacion"`
	Simulation     SimulationTuning    `koanf:"parametros_simulacion" json:"parametros_simulacion"`
}

type Dimensions struct {
	Length float64 `koanf:"largo" json:"largo"`   // m
	Width  float64 `koanf:"ancho" json:"ancho"`   // m
	Height float64 `koanf:"altura" json:"altura"` // m
}

type ThermalProperties struct {
	Absorptivity   float64 `koanf:"absorptividad" json:"absorptividad"`
	IncidenceAngle float64 `koanf:"angulo_incidencia" json:"angulo_incidencia"` // degrees
	BoxMaterial    string  `koanf:"material_caja" json:"material_caja"`
}

type WaterProperties struct {
	SpecificHeat float64 `koanf:"cp_agua" json:"cp_agua"`                                       // J/(kg·K)
	LatentHeat   float64 `koanf:"calor_latente_vaporizacion" json:"calor_latente_vaporizacion"` // J/kg
	InitialTempK float64 `koanf:"temp_inicial" json:"temp_inicial"`
	BoilingTempK float64 `koanf:"temp_ebullicion" json:"temp_ebullicion"`
}

type OperatingConditions struct {
	UsableHours float64 `koanf:"horas_radiacion_util" json:"horas_radiacion_util"`
	WaterMass   float64 `koanf:"masa_agua" json:"masa_agua"` // kg
	Hemisphere  string  `koanf:"hemisferio" json:"hemisferio"`
	Latitude    float64 `koanf:"ubicacion_latitud" json:"ubicacion_latitud"` // degrees
}

type SimulationTuning struct {
	BaseRadiation     float64 `koanf:"radiacion_base" json:"radiacion_base"`           // W/m²
	SeasonalAmplitude float64 `koanf:"amplitud_variacion" json:"amplitud_variacion"`   // W/m²
	DailyVariability  float64 `koanf:"variabilidad_diaria" json:"variabilidad_diaria"` // W/m² stddev

	// Discrete efficiency multipliers keyed by radiation intensity:
	// >800, 600-800, 400-600, <400 W/m².
	EfficiencyHigh    float64 `koanf:"factor_eficiencia_alta" json:"factor_eficiencia_alta"`
	EfficiencyMedium  float64 `koanf:"factor_eficiencia_media" json:"factor_eficiencia_media"`
	EfficiencyLow     float64 `koanf:"factor_eficiencia_baja" json:"factor_eficiencia_baja"`
	EfficiencyMinimum float64 `koanf:"factor_eficiencia_minima" json:"factor_eficiencia_minima"`
}

// Fixed material and geometry constants of the prototype. These are not
// exposed in the parameter file.
const (
	Emissivity             = 0.95
	GlassTransmissivity    = 0.9
	StefanBoltzmann        = 5.67e-8 // W/(m²·K⁴)
	MaterialThickness      = 0.0025  // m
	InsulationThickness    = 0.02    // m
	InsulationConductivity = 0.04    // W/(m·K), polystyrene
	GlassThickness         = 0.01    // m
	GlassConductivity      = 1.0     // W/(m·K)
	NaturalConvectionCoeff = 5.0     // W/(m²·K)
	WaterDensity           = 1000.0  // kg/m³
)

// Set is the immutable parameter bundle handed to every component. Derived
// quantities are computed once at construction.
type Set struct {
	Config

	CaptureArea float64 // m²
	BaseArea    float64
	TopArea     float64
	WallArea    float64
	TotalArea   float64

	Volume       float64 // m³
	VolumeLiters float64
	WaterDepth   float64 // m

	CosIncidence  float64
	Conductivity  float64 // resolved from BoxMaterial, W/(m·K)
	UsableSeconds float64

	DeltaTK             float64 // initial to boiling
	HeatingEnergyJ      float64
	EvaporationEnergyJ  float64
	TotalRequiredJ      float64
	EnergyPerKgJ        float64
	ConductionR         float64 // K/W through the box walls
	InsulationR         float64
	TotalLossResistance float64
}

// Recognized top-level sections of the parameter file. Anything else is a
// likely typo and is rejected rather than silently ignored.
var knownSections = map[string]bool{
	"dimensiones":              true,
	"propiedades_termicas":     true,
	"propiedades_agua":         true,
	"conductividades_termicas": true,
	"condiciones_operacion":    true,
	"parametros_simulacion":    true,
}

// Load builds a Set from defaults, optionally overridden by a JSON parameter
// file. Keys present in the file override the matching default; missing keys
// keep their default value.
func Load(path string) (*Set, error) {
	cfg := Defaults()
	if path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
			return nil, fmt.Errorf("read parameter file %s: %w", path, err)
		}
		for section := range k.Raw() {
			if !knownSections[section] {
				return nil, &ConfigError{Field: section, Reason: "unrecognized section"}
			}
		}

		merged := koanf.New(".")
		if err := merged.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
			return nil, fmt.Errorf("load defaults: %w", err)
		}

		// Reject misspelled leaf keys too; a typo inside a known section
		// would otherwise silently fall back to the default. The material
		// conductivity table is exempt since its keys are material names.
		known := make(map[string]bool, len(merged.Keys()))
		for _, key := range merged.Keys() {
			known[key] = true
		}
		for _, key := range k.Keys() {
			if known[key] || strings.HasPrefix(key, "conductividades_termicas.") {
				continue
			}
			return nil, &ConfigError{Field: key, Reason: "unrecognized key"}
		}

		if err := merged.Merge(k); err != nil {
			return nil, fmt.Errorf("merge overrides: %w", err)
		}
		if err := merged.Unmarshal("", &cfg); err != nil {
			return nil, fmt.Errorf("decode parameters: %w", err)
		}
	}
	return New(cfg)
}

// New validates a configuration and derives the dependent quantities.
func New(cfg Config) (*Set, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	s := &Set{Config: cfg}

	d := cfg.Dimensions
	s.CaptureArea = d.Length * d.Width
	s.BaseArea = s.CaptureArea
	s.TopArea = s.CaptureArea
	s.WallArea = 2 * (d.Length + d.Width) * d.Height
	s.TotalArea = s.BaseArea + s.TopArea + s.WallArea
	s.Volume = d.Length * d.Width * d.Height
	s.VolumeLiters = s.Volume * 1000
	s.WaterDepth = cfg.Operating.WaterMass / (WaterDensity * s.BaseArea)

	s.CosIncidence = math.Cos(cfg.Thermal.IncidenceAngle * math.Pi / 180)
	s.Conductivity = cfg.Conductivities[strings.ToLower(cfg.Thermal.BoxMaterial)]
	s.UsableSeconds = cfg.Operating.UsableHours * 3600

	w := cfg.Water
	s.DeltaTK = w.BoilingTempK - w.InitialTempK
	s.HeatingEnergyJ = cfg.Operating.WaterMass * w.SpecificHeat * s.DeltaTK
	s.EvaporationEnergyJ = cfg.Operating.WaterMass * w.LatentHeat
	s.TotalRequiredJ = s.HeatingEnergyJ + s.EvaporationEnergyJ
	s.EnergyPerKgJ = s.TotalRequiredJ / cfg.Operating.WaterMass

	s.ConductionR = MaterialThickness / (s.Conductivity * s.WallArea)
	s.InsulationR = InsulationThickness / (InsulationConductivity * s.WallArea)

	// Walls (conduction + insulation) in parallel with the glass cover,
	// in series with exterior natural convection.
	rWalls := s.ConductionR + s.InsulationR
	rGlass := GlassThickness / (GlassConductivity * s.TopArea)
	rConvExt := 1 / (NaturalConvectionCoeff * s.TotalArea)
	s.TotalLossResistance = 1/(1/rWalls+1/rGlass) + rConvExt

	return s, nil
}

func validate(cfg Config) error {
	d := cfg.Dimensions
	if d.Length <= 0 {
		return &ConfigError{Field: "dimensiones.largo", Reason: "must be positive"}
	}
	if d.Width <= 0 {
		return &ConfigError{Field: "dimensiones.ancho", Reason: "must be positive"}
	}
	if d.Height <= 0 {
		return &ConfigError{Field: "dimensiones.altura", Reason: "must be positive"}
	}

	t := cfg.Thermal
	if t.Absorptivity <= 0 || t.Absorptivity > 1 {
		return &ConfigError{Field: "propiedades_termicas.absorptividad", Reason: "must be in (0, 1]"}
	}
	if t.IncidenceAngle < 0 || t.IncidenceAngle >= 90 {
		return &ConfigError{Field: "propiedades_termicas.angulo_incidencia", Reason: "must be in [0, 90)"}
	}
	material := strings.ToLower(t.BoxMaterial)
	cond, ok := cfg.Conductivities[material]
	if !ok {
		return &ConfigError{Field: "propiedades_termicas.material_caja", Reason: fmt.Sprintf("unknown material %q", t.BoxMaterial)}
	}
	if cond <= 0 {
		return &ConfigError{Field: "conductividades_termicas." + material, Reason: "must be positive"}
	}

	w := cfg.Water
	if w.SpecificHeat <= 0 {
		return &ConfigError{Field: "propiedades_agua.cp_agua", Reason: "must be positive"}
	}
	if w.LatentHeat <= 0 {
		return &ConfigError{Field: "propiedades_agua.calor_latente_vaporizacion", Reason: "must be positive"}
	}
	if w.InitialTempK <= 0 || w.BoilingTempK <= w.InitialTempK {
		return &ConfigError{Field: "propiedades_agua.temp_ebullicion", Reason: "boiling temperature must exceed initial temperature"}
	}

	o := cfg.Operating
	if o.UsableHours <= 0 || o.UsableHours > 24 {
		return &ConfigError{Field: "condiciones_operacion.horas_radiacion_util", Reason: "must be in (0, 24]"}
	}
	if o.WaterMass <= 0 {
		return &ConfigError{Field: "condiciones_operacion.masa_agua", Reason: "must be positive"}
	}
	switch Hemisphere(strings.ToLower(o.Hemisphere)) {
	case HemisphereNorth, HemisphereSouth:
	default:
		return &ConfigError{Field: "condiciones_operacion.hemisferio", Reason: `must be "norte" or "sur"`}
	}
	if o.Latitude < -90 || o.Latitude > 90 {
		return &ConfigError{Field: "condiciones_operacion.ubicacion_latitud", Reason: "must be in [-90, 90]"}
	}

	sim := cfg.Simulation
	if sim.BaseRadiation <= 0 {
		return &ConfigError{Field: "parametros_simulacion.radiacion_base", Reason: "must be positive"}
	}
	if sim.SeasonalAmplitude < 0 {
		return &ConfigError{Field: "parametros_simulacion.amplitud_variacion", Reason: "must be non-negative"}
	}
	if sim.DailyVariability < 0 {
		return &ConfigError{Field: "parametros_simulacion.variabilidad_diaria", Reason: "must be non-negative"}
	}
	for field, f := range map[string]float64{
		"factor_eficiencia_alta":   sim.EfficiencyHigh,
		"factor_eficiencia_media":  sim.EfficiencyMedium,
		"factor_eficiencia_baja":   sim.EfficiencyLow,
		"factor_eficiencia_minima": sim.EfficiencyMinimum,
	} {
		if f <= 0 || f > 1 {
			return &ConfigError{Field: "parametros_simulacion." + field, Reason: "must be in (0, 1]"}
		}
	}
	return nil
}

// HemisphereNorthern reports whether the configured site is in the northern
// hemisphere.
func (s *Set) HemisphereNorthern() bool {
	return Hemisphere(strings.ToLower(s.Operating.Hemisphere)) == HemisphereNorth
}

// EfficiencyFactor returns the discrete band multiplier for a given solar
// radiation intensity.
func (s *Set) EfficiencyFactor(radiation float64) float64 {
	switch {
	case radiation >= 800:
		return s.Simulation.EfficiencyHigh
	case radiation >= 600:
		return s.Simulation.EfficiencyMedium
	case radiation >= 400:
		return s.Simulation.EfficiencyLow
	default:
		return s.Simulation.EfficiencyMinimum
	}
}
