package climate

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/models"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/params"
)

// Physical clamps applied after sampling. Clamping instead of resampling
// keeps exactly one record per day.
const (
	maxRadiation = 950 // W/m²
	minWindSpeed = 0.5 // m/s
)

// Seasonal model constants: annual means and amplitudes of the synthetic
// site climate.
const (
	meanAmbientTempC  = 15.0
	ambientAmplitudeC = 12.0
	tempNoiseStddevC  = 3.0

	meanHumidity       = 60.0
	humidityAmplitude  = 20.0
	humidityNoiseStdev = 10.0

	meanWindSpeed   = 2.0
	windAmplitude   = 1.0
	windNoiseStddev = 0.8
)

// Day-of-year of the June solstice; the December solstice sits half a year
// later, wrapping to day 355.
const northSolsticeDOY = 172

// Generate synthesizes one calendar year of daily climate records. The
// output is deterministic for a fixed seed, strictly ordered by day-of-year,
// with no gaps.
func Generate(p *params.Set, year int, seed uint64) []models.DailyClimate {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	days := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)}

	// Latitude scales the seasonal swing: equatorial sites see about half
	// the configured amplitude, 45° reproduces it exactly.
	latScale := 0.5 + math.Abs(p.Operating.Latitude)/90.0
	amplitude := p.Simulation.SeasonalAmplitude * latScale

	solstice := float64(northSolsticeDOY)
	if !p.HemisphereNorthern() {
		solstice += float64(days) / 2
	}

	out := make([]models.DailyClimate, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		doy := i + 1

		phase := 2 * math.Pi * (float64(doy) - solstice) / float64(days)
		seasonal := math.Cos(phase)

		radiation := p.Simulation.BaseRadiation + amplitude*seasonal +
			normal.Rand()*p.Simulation.DailyVariability
		radiation = clamp(radiation, 0, maxRadiation)

		// Ambient temperature tracks the same seasonal curve as radiation,
		// with its own daily noise.
		tempC := meanAmbientTempC + ambientAmplitudeC*seasonal + normal.Rand()*tempNoiseStddevC

		// Humidity runs counter-seasonal: wetter in the low-radiation months.
		humidity := meanHumidity - humidityAmplitude*seasonal + normal.Rand()*humidityNoiseStdev
		humidity = clamp(humidity, 0, 100)

		wind := meanWindSpeed + windAmplitude*math.Sin(phase) + normal.Rand()*windNoiseStddev
		if wind < minWindSpeed {
			wind = minWindSpeed
		}

		out = append(out, models.DailyClimate{
			Date:          date,
			DayOfYear:     doy,
			Month:         int(date.Month()),
			Day:           date.Day(),
			Radiation:     radiation,
			AmbientTempC:  tempC,
			AmbientTempK:  tempC + 273.15,
			Humidity:      humidity,
			VaporPressure: vaporPressure(tempC, humidity),
			WindSpeed:     wind,
		})
	}
	return out
}

// vaporPressure computes the ambient water vapor pressure in Pa from the
// Magnus-Tetens saturation approximation.
func vaporPressure(tempC, humidity float64) float64 {
	saturation := 610.78 * math.Exp(17.27*tempC/(tempC+237.3))
	return humidity * saturation / 100
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
