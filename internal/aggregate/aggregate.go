package aggregate

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/models"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/params"
)

// MonthNames indexes Spanish month names by calendar month (1-12).
var MonthNames = [13]string{"",
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// seasonBins is the fixed month partition. Labels are for the northern
// hemisphere; the south swaps them half a year.
var seasonBins = []struct {
	north  string
	south  string
	months [3]int
}{
	{"Invierno", "Verano", [3]int{12, 1, 2}},
	{"Primavera", "Otoño", [3]int{3, 4, 5}},
	{"Verano", "Invierno", [3]int{6, 7, 8}},
	{"Otoño", "Primavera", [3]int{9, 10, 11}},
}

// Summary holds every aggregated view of a full-year run.
type Summary struct {
	Monthly  []models.MonthlySummary
	Seasonal []models.SeasonalSummary
	Annual   models.AnnualKPIs
}

// Summarize reduces the daily series into monthly and seasonal summaries and
// annual KPIs. Values keep full precision; rounding happens at render time.
func Summarize(p *params.Set, days []models.DailyResult) *Summary {
	s := &Summary{}
	s.Monthly = monthly(days)
	s.Seasonal = seasonal(p, s.Monthly)
	s.Annual = annual(days, s.Monthly, s.Seasonal)
	return s
}

func monthly(days []models.DailyResult) []models.MonthlySummary {
	type acc struct {
		production, radiation, gor, efficiency         float64
		waterTemp, ambientTemp, humidity, wind, losses float64
		solarJ, usefulJ, evapJ                         float64
		n                                              int
	}
	var byMonth [13]acc
	var annualTotal float64
	for _, d := range days {
		a := &byMonth[d.Month]
		a.production += d.ProductionLiters
		a.radiation += d.Radiation
		a.gor += d.GOR
		a.efficiency += d.EfficiencyPct
		a.waterTemp += d.WaterTempC
		a.ambientTemp += d.AmbientTempC
		a.humidity += d.Humidity
		a.wind += d.WindSpeed
		a.losses += d.TotalLossW
		a.solarJ += d.SolarInputJ
		a.usefulJ += d.UsefulJ
		a.evapJ += d.EvaporationJ
		a.n++
		annualTotal += d.ProductionLiters
	}

	out := make([]models.MonthlySummary, 0, 12)
	for m := 1; m <= 12; m++ {
		a := byMonth[m]
		ms := models.MonthlySummary{Month: m, Name: MonthNames[m]}
		if a.n > 0 {
			n := float64(a.n)
			ms.ProductionLiters = a.production
			ms.MeanRadiation = a.radiation / n
			ms.MeanGOR = a.gor / n
			ms.MeanEfficiency = a.efficiency / n
			ms.MeanWaterTempC = a.waterTemp / n
			ms.MeanAmbientTempC = a.ambientTemp / n
			ms.MeanHumidity = a.humidity / n
			ms.MeanWindSpeed = a.wind / n
			ms.MeanLossW = a.losses / n
			ms.SolarInputJ = a.solarJ
			ms.UsefulJ = a.usefulJ
			ms.EvaporationJ = a.evapJ
		}
		ms.SharePct = share(ms.ProductionLiters, annualTotal)
		out = append(out, ms)
	}
	return out
}

func seasonal(p *params.Set, monthly []models.MonthlySummary) []models.SeasonalSummary {
	byMonth := make(map[int]models.MonthlySummary, 12)
	var annualTotal float64
	for _, m := range monthly {
		byMonth[m.Month] = m
		annualTotal += m.ProductionLiters
	}

	out := make([]models.SeasonalSummary, 0, 4)
	for _, bin := range seasonBins {
		label := bin.north
		if !p.HemisphereNorthern() {
			label = bin.south
		}
		ss := models.SeasonalSummary{Season: label, Months: bin.months}
		var radiation, gor, water, ambient, losses float64
		for _, m := range bin.months {
			ms := byMonth[m]
			ss.ProductionLiters += ms.ProductionLiters
			radiation += ms.MeanRadiation
			gor += ms.MeanGOR
			water += ms.MeanWaterTempC
			ambient += ms.MeanAmbientTempC
			losses += ms.MeanLossW
		}
		ss.MeanRadiation = radiation / 3
		ss.MeanGOR = gor / 3
		ss.MeanWaterTempC = water / 3
		ss.MeanAmbientTempC = ambient / 3
		ss.MeanLossW = losses / 3
		ss.SharePct = share(ss.ProductionLiters, annualTotal)
		out = append(out, ss)
	}
	return out
}

func annual(days []models.DailyResult, monthly []models.MonthlySummary, seasonal []models.SeasonalSummary) models.AnnualKPIs {
	k := models.AnnualKPIs{}
	if len(days) == 0 {
		return k
	}

	production := make([]float64, len(days))
	radiation := make([]float64, len(days))
	humidity := make([]float64, len(days))
	for i, d := range days {
		production[i] = d.ProductionLiters
		radiation[i] = d.Radiation
		humidity[i] = d.Humidity

		k.TotalProductionLiters += d.ProductionLiters
		k.MeanGOR += d.GOR
		k.MeanEfficiencyPct += d.EfficiencyPct
		k.MeanWaterTempC += d.WaterTempC
		k.MeanAmbientTempC += d.AmbientTempC
		k.MeanWindSpeed += d.WindSpeed
		k.MeanLossW += d.TotalLossW
		k.SolarInputJ += d.SolarInputJ
		k.UsefulJ += d.UsefulJ
		k.EvaporationJ += d.EvaporationJ
	}
	n := float64(len(days))
	k.MeanDailyProduction = k.TotalProductionLiters / n
	k.MeanRadiation = stat.Mean(radiation, nil)
	k.MeanHumidity = stat.Mean(humidity, nil)
	k.MeanGOR /= n
	k.MeanEfficiencyPct /= n
	k.MeanWaterTempC /= n
	k.MeanAmbientTempC /= n
	k.MeanWindSpeed /= n
	k.MeanLossW /= n

	if k.SolarInputJ > 0 {
		k.AnnualGOR = k.UsefulJ / k.SolarInputJ
	}

	for _, d := range days {
		if d.ProductionLiters > k.MeanDailyProduction {
			k.HighProductionDays++
		}
		if d.ProductionLiters < k.MeanDailyProduction/2 {
			k.LowProductionDays++
		}
	}

	k.CorrRadiationProd = correlation(radiation, production)
	k.CorrHumidityProd = correlation(humidity, production)

	for _, m := range monthly {
		if k.BestMonth == "" || m.ProductionLiters > k.BestMonthLiters {
			k.BestMonth = m.Name
			k.BestMonthLiters = m.ProductionLiters
		}
		if k.WorstMonth == "" || m.ProductionLiters < k.WorstMonthLiters {
			k.WorstMonth = m.Name
			k.WorstMonthLiters = m.ProductionLiters
		}
	}
	var bestSeason float64
	for _, s := range seasonal {
		if k.BestSeason == "" || s.ProductionLiters > bestSeason {
			k.BestSeason = s.Season
			bestSeason = s.ProductionLiters
		}
	}
	return k
}

// correlation is Pearson's r, with degenerate (zero-variance) inputs mapped
// to 0 instead of NaN.
func correlation(x, y []float64) float64 {
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

func share(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total * 100
}
