package thermal

import (
	"fmt"
	"math"

	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/models"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/params"
)

// PhysicsError reports a degenerate physical constant that would make the
// energy balance undefined. It is raised before any per-day computation so
// NaNs never propagate silently.
type PhysicsError struct {
	Constant string
	Reason   string
}

func (e *PhysicsError) Error() string {
	return fmt.Sprintf("physics: %s: %s", e.Constant, e.Reason)
}

const (
	// Fraction of the theoretical losses that escape a well-insulated box.
	insulationFactor = 0.15
	// Extra thermal resistance multiplier for the insulated loss path.
	resistanceFactor = 8.0
	// Losses are capped at this fraction of the absorbed energy.
	maxLossFraction = 0.65
	// Effective sky temperature sits below ambient for radiative exchange.
	skyTempOffsetK = 6.0
	// Fraction of yesterday's excess water temperature retained overnight.
	overnightRetention = 0.25
	// Still water rise above ambient per W/m² of irradiance, calibrated
	// against observed basin-still operating temperatures.
	waterTempGain = 0.13
	// Glass cover temperature sits between the water and ambient.
	glassTempFraction = 0.3
	// At most this fraction of the basin water can evaporate in one day.
	maxDailyEvapFraction = 0.25
	// Evaporated masses below this are numerical noise and zeroed out.
	minEvapMassKg = 0.001
)

// windConvectionCoeff is the McAdams forced-convection correlation.
func windConvectionCoeff(windSpeed float64) float64 {
	return 5.7 + 3.8*windSpeed
}

// Compute runs the daily energy balance over a full climate series. The
// water temperature carries over between days, so the series is folded
// strictly in chronological order; day 1 seeds from the configured initial
// temperature.
func Compute(p *params.Set, days []models.DailyClimate) ([]models.DailyResult, error) {
	if err := checkConstants(p); err != nil {
		return nil, err
	}

	out := make([]models.DailyResult, 0, len(days))
	waterK := p.Water.InitialTempK
	for _, day := range days {
		r := computeDay(p, day, waterK)
		waterK = r.WaterTempK
		out = append(out, r)
	}
	return out, nil
}

func checkConstants(p *params.Set) error {
	if p.Water.SpecificHeat <= 0 {
		return &PhysicsError{Constant: "cp_agua", Reason: "must be positive"}
	}
	if p.Water.LatentHeat <= 0 {
		return &PhysicsError{Constant: "calor_latente_vaporizacion", Reason: "must be positive"}
	}
	if p.Operating.WaterMass <= 0 {
		return &PhysicsError{Constant: "masa_agua", Reason: "must be positive"}
	}
	if p.UsableSeconds <= 0 {
		return &PhysicsError{Constant: "horas_radiacion_util", Reason: "must be positive"}
	}
	if p.CaptureArea <= 0 {
		return &PhysicsError{Constant: "area_captacion", Reason: "must be positive"}
	}
	if p.TotalLossResistance <= 0 {
		return &PhysicsError{Constant: "resistencia_total", Reason: "must be positive"}
	}
	return nil
}

func computeDay(p *params.Set, day models.DailyClimate, prevWaterK float64) models.DailyResult {
	ambK := day.AmbientTempK

	// Overnight the basin relaxes toward ambient, keeping a fraction of
	// yesterday's excess heat.
	morningK := ambK + overnightRetention*(prevWaterK-ambK)
	if morningK < ambK {
		morningK = ambK
	}

	inputJ := day.Radiation * p.CaptureArea * p.UsableSeconds
	absorbedJ := inputJ * p.CosIncidence * p.Thermal.Absorptivity

	// Operating water temperature: the irradiance-driven rise above ambient,
	// or the retained morning heat if that is higher, bounded to
	// [ambient, boiling].
	gainK := waterTempGain * day.Radiation
	waterK := ambK + gainK
	if waterK < morningK {
		waterK = morningK
	}
	if waterK > p.Water.BoilingTempK {
		waterK = p.Water.BoilingTempK
	}
	if waterK < ambK {
		waterK = ambK
	}

	// Loss terms evaluated at the operating state; the cover sits between
	// the water and ambient, the sky below ambient.
	glassK := ambK + glassTempFraction*(waterK-ambK)
	skyK := ambK - skyTempOffsetK
	hConv := windConvectionCoeff(day.WindSpeed)

	convGlassW := insulationFactor * hConv * p.TopArea * (glassK - ambK)
	convWallsW := insulationFactor * hConv * p.WallArea * (waterK - ambK)
	radiativeW := insulationFactor * params.Emissivity * params.StefanBoltzmann * p.TopArea *
		(math.Pow(glassK, 4) - math.Pow(skyK, 4))
	conductionW := insulationFactor * (waterK - ambK) / (p.TotalLossResistance * resistanceFactor)

	convectionW := convGlassW + convWallsW
	totalLossW := convectionW + radiativeW + conductionW
	if totalLossW < 0 {
		totalLossW = 0
	}

	lostJ := totalLossW * p.UsableSeconds
	if max := maxLossFraction * absorbedJ; lostJ > max {
		lostJ = max
	}

	usefulJ := absorbedJ - lostJ
	if usefulJ < 0 {
		usefulJ = 0
	}

	// Sensible-heat demand: the batch is fed at the initial temperature and
	// must be driven up to the irradiance-set level before evaporation
	// starts. The demand tracks the unclamped rise so bright days pay the
	// full heating bill.
	thermalMass := p.Operating.WaterMass * p.Water.SpecificHeat
	heatingJ := thermalMass * (ambK + gainK - p.Water.InitialTempK)
	if heatingJ < 0 {
		heatingJ = 0
	}
	evapJ := usefulJ - heatingJ
	if evapJ < 0 {
		evapJ = 0
	}

	// Discrete efficiency banding by radiation intensity, nudged by ambient
	// temperature: warm days condense better.
	band := p.EfficiencyFactor(day.Radiation)
	tempFactor := clamp((day.AmbientTempC+10)/40, 0.5, 1.2)

	evapMassKg := band * tempFactor * evapJ / p.Water.LatentHeat
	if max := maxDailyEvapFraction * p.Operating.WaterMass; evapMassKg > max {
		evapMassKg = max
	}
	if evapMassKg < minEvapMassKg {
		evapMassKg = 0
	}

	var gor float64
	if inputJ > 0 {
		gor = usefulJ / inputJ
	}
	var efficiency float64
	if absorbedJ > 0 {
		efficiency = usefulJ / absorbedJ * band * 100
	}

	return models.DailyResult{
		Date:      day.Date,
		DayOfYear: day.DayOfYear,
		Month:     day.Month,
		Day:       day.Day,

		Radiation:    day.Radiation,
		AmbientTempC: day.AmbientTempC,
		Humidity:     day.Humidity,
		WindSpeed:    day.WindSpeed,

		WaterTempK: waterK,
		WaterTempC: waterK - 273.15,
		GlassTempC: glassK - 273.15,

		ConductionLossW: conductionW,
		ConvectionLossW: convectionW,
		RadiationLossW:  radiativeW,
		TotalLossW:      totalLossW,

		SolarInputJ:  inputJ,
		AbsorbedJ:    absorbedJ,
		LostJ:        lostJ,
		UsefulJ:      usefulJ,
		EvaporationJ: evapJ,

		// 1 kg of distillate is one liter to within the model's precision.
		ProductionLiters: evapMassKg,
		GOR:              gor,
		EfficiencyPct:    efficiency,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
