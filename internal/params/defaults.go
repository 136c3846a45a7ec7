package params

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults returns the reference configuration of the prototype: a 0.45 m ×
// 0.25 m × 0.30 m aluminium box at 40°N holding a 1 kg batch of water.
func Defaults() Config {
	return Config{
		Dimensions: Dimensions{
			Length: 0.45,
			Width:  0.25,
			Height: 0.30,
		},
		Thermal: ThermalProperties{
			Absorptivity:   0.9,
			IncidenceAngle: 30,
			BoxMaterial:    "aluminio",
		},
		Water: WaterProperties{
			SpecificHeat: 4186,
			LatentHeat:   2.26e6,
			InitialTempK: 293, // 20°C
			BoilingTempK: 368, // 95°C
		},
		Conductivities: map[string]float64{
			"acero":    50,
			"aluminio": 205,
			"pvc":      0.19,
		},
		Operating: OperatingConditions{
			UsableHours: 6,
			WaterMass:   1,
			Hemisphere:  string(HemisphereNorth),
			Latitude:    40.0,
		},
		Simulation: SimulationTuning{
			BaseRadiation:     500,
			SeasonalAmplitude: 350,
			DailyVariability:  100,
			EfficiencyHigh:    0.80,
			EfficiencyMedium:  0.70,
			EfficiencyLow:     0.55,
			EfficiencyMinimum: 0.35,
		},
	}
}

// savedParams is the on-disk shape of a persisted parameter set: the base
// configuration plus the quantities derived from it, for reference.
type savedParams struct {
	ConfigBase Config        `json:"config_base"`
	Derived    derivedValues `json:"parametros_calculados"`
}

type derivedValues struct {
	CaptureArea   float64 `json:"area_captacion"`
	WallArea      float64 `json:"area_paredes"`
	TotalArea     float64 `json:"area_total"`
	Volume        float64 `json:"volumen"`
	VolumeLiters  float64 `json:"volumen_litros"`
	CosIncidence  float64 `json:"cos_angulo_incidencia"`
	Conductivity  float64 `json:"conductividad_material"`
	HeatingEnergy float64 `json:"energia_calentamiento"`
	EvapEnergy    float64 `json:"energia_evaporacion"`
	TotalRequired float64 `json:"energia_total_requerida"`
	EnergyPerKg   float64 `json:"energia_por_kg"`
	ConductionR   float64 `json:"resistencia_conduccion"`
	InsulationR   float64 `json:"resistencia_aislamiento"`
	TotalLossR    float64 `json:"resistencia_total"`
	UsableSecs    float64 `json:"segundos_radiacion_util"`
	WaterDepth    float64 `json:"profundidad_agua"`
}

// Save writes the active configuration and its derived quantities as JSON,
// creating parent directories as needed.
func (s *Set) Save(path string) error {
	out := savedParams{
		ConfigBase: s.Config,
		Derived: derivedValues{
			CaptureArea:   s.CaptureArea,
			WallArea:      s.WallArea,
			TotalArea:     s.TotalArea,
			Volume:        s.Volume,
			VolumeLiters:  s.VolumeLiters,
			CosIncidence:  s.CosIncidence,
			Conductivity:  s.Conductivity,
			HeatingEnergy: s.HeatingEnergyJ,
			EvapEnergy:    s.EvaporationEnergyJ,
			TotalRequired: s.TotalRequiredJ,
			EnergyPerKg:   s.EnergyPerKgJ,
			ConductionR:   s.ConductionR,
			InsulationR:   s.InsulationR,
			TotalLossR:    s.TotalLossResistance,
			UsableSecs:    s.UsableSeconds,
			WaterDepth:    s.WaterDepth,
		},
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode parameters: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
