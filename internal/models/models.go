package models

import "time"

// DailyClimate is one synthesized day of weather at the site. Records are
// produced in chronological order with strictly increasing DayOfYear and are
// never mutated after generation.
type DailyClimate struct {
	Date          time.Time
	DayOfYear     int
	Month         int
	Day           int
	Radiation     float64 // W/m²
	AmbientTempC  float64
	AmbientTempK  float64
	Humidity      float64 // %
	VaporPressure float64 // Pa
	WindSpeed     float64 // m/s
}

// DailyResult is the energy balance of one day, joined 1:1 with the matching
// DailyClimate by DayOfYear.
type DailyResult struct {
	Date      time.Time
	DayOfYear int
	Month     int
	Day       int

	// Climate inputs carried through for persistence and reporting.
	Radiation    float64
	AmbientTempC float64
	Humidity     float64
	WindSpeed    float64

	WaterTempK float64
	WaterTempC float64
	GlassTempC float64

	// Instantaneous loss terms in watts over the usable radiation window.
	ConductionLossW float64
	ConvectionLossW float64
	RadiationLossW  float64
	TotalLossW      float64

	// Energy terms in joules for the day.
	SolarInputJ  float64 // incident on the capture area
	AbsorbedJ    float64 // after incidence angle and absorptivity
	LostJ        float64
	UsefulJ      float64 // available for heating + evaporation
	EvaporationJ float64

	ProductionLiters float64
	GOR              float64
	EfficiencyPct    float64
}

// MonthlySummary aggregates one calendar month of daily results. Recomputed
// from the daily series on every run, never authoritative state.
type MonthlySummary struct {
	Month            int
	Name             string
	ProductionLiters float64
	MeanRadiation    float64
	MeanGOR          float64
	MeanEfficiency   float64 // %
	MeanWaterTempC   float64
	MeanAmbientTempC float64
	MeanHumidity     float64
	MeanWindSpeed    float64
	MeanLossW        float64
	SolarInputJ      float64
	UsefulJ          float64
	EvaporationJ     float64
	SharePct         float64 // of annual production
}

// SeasonalSummary aggregates a fixed three-month bin. The label is
// hemisphere-aware: the 12-1-2 bin is Invierno in the north, Verano in the
// south.
type SeasonalSummary struct {
	Season           string
	Months           [3]int
	ProductionLiters float64
	MeanRadiation    float64
	MeanGOR          float64
	MeanWaterTempC   float64
	MeanAmbientTempC float64
	MeanLossW        float64
	SharePct         float64
}

// AnnualKPIs are the scalar indicators of a full-year run.
type AnnualKPIs struct {
	TotalProductionLiters float64
	MeanDailyProduction   float64
	MeanRadiation         float64
	MeanGOR               float64
	AnnualGOR             float64 // energy-weighted over the whole year
	MeanEfficiencyPct     float64
	MeanWaterTempC        float64
	MeanAmbientTempC      float64
	MeanHumidity          float64
	MeanWindSpeed         float64
	MeanLossW             float64
	HighProductionDays    int // days above the annual daily mean
	LowProductionDays     int // days below half the annual daily mean
	CorrRadiationProd     float64
	CorrHumidityProd      float64
	BestMonth             string
	BestMonthLiters       float64
	WorstMonth            string
	WorstMonthLiters      float64
	BestSeason            string
	SolarInputJ           float64
	UsefulJ               float64
	EvaporationJ          float64
}

// RunRecord is a persisted simulation run.
type RunRecord struct {
	ID              int64
	CreatedAt       time.Time
	Seed            uint64
	Year            int
	ParamsJSON      string
	TotalProduction float64
	MeanGOR         float64
	MeanRadiation   float64
}
