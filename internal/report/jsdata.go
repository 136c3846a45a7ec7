package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// jsPayload is the shape the static dashboard script expects under the
// global `datosSimulacion`.
type jsPayload struct {
	Production struct {
		Daily     [][2]interface{} `json:"diaria"`
		Monthly   [][2]interface{} `json:"mensual"`
		Annual    float64          `json:"anual"`
		DailyMean float64          `json:"media_diaria"`
		Seasonal  [][2]interface{} `json:"estacional"`
	} `json:"produccion"`
	Radiation struct {
		Daily [][2]interface{} `json:"diaria"`
		Mean  float64          `json:"media"`
		Max   float64          `json:"max"`
		Min   float64          `json:"min"`
	} `json:"radiacion"`
	Efficiency struct {
		MeanGOR     float64          `json:"gor_medio"`
		MonthlyGOR  [][2]interface{} `json:"gor_mensual"`
		SeasonalGOR [][2]interface{} `json:"gor_estacional"`
	} `json:"eficiencia"`
	Temperature struct {
		AmbientMean    float64          `json:"ambiente_media"`
		WaterMean      float64          `json:"agua_media"`
		AmbientMonthly [][2]interface{} `json:"ambiente_mensual"`
		WaterMonthly   [][2]interface{} `json:"agua_mensual"`
	} `json:"temperatura"`
	Losses struct {
		Mean     float64          `json:"total_media"`
		Monthly  [][2]interface{} `json:"mensual"`
		Seasonal [][2]interface{} `json:"estacional"`
	} `json:"perdidas"`
	Stats struct {
		HighProductionDays int     `json:"dias_alta_produccion"`
		LowProductionDays  int     `json:"dias_baja_produccion"`
		CorrRadiationProd  float64 `json:"correlacion_rad_prod"`
		CorrHumidityProd   float64 `json:"correlacion_hum_prod"`
		CaptureArea        float64 `json:"area_captacion"`
		ThermalEfficiency  float64 `json:"eficiencia_termica"`
	} `json:"estadisticas"`
}

// WriteJS emits the dashboard data asset: a single `const datosSimulacion`
// assignment plus two small formatting helpers.
func WriteJS(w io.Writer, d *Data) error {
	var p jsPayload

	var radMin, radMax float64
	if len(d.Days) > 0 {
		radMin, radMax = d.Days[0].Radiation, d.Days[0].Radiation
	}
	for _, day := range d.Days {
		date := day.Date.Format("2006-01-02")
		p.Production.Daily = append(p.Production.Daily, [2]interface{}{date, day.ProductionLiters})
		p.Radiation.Daily = append(p.Radiation.Daily, [2]interface{}{date, day.Radiation})
		if day.Radiation < radMin {
			radMin = day.Radiation
		}
		if day.Radiation > radMax {
			radMax = day.Radiation
		}
	}
	for _, m := range d.Monthly {
		p.Production.Monthly = append(p.Production.Monthly, [2]interface{}{m.Name, m.ProductionLiters})
		p.Efficiency.MonthlyGOR = append(p.Efficiency.MonthlyGOR, [2]interface{}{m.Name, m.MeanGOR})
		p.Temperature.AmbientMonthly = append(p.Temperature.AmbientMonthly, [2]interface{}{m.Name, m.MeanAmbientTempC})
		p.Temperature.WaterMonthly = append(p.Temperature.WaterMonthly, [2]interface{}{m.Name, m.MeanWaterTempC})
		p.Losses.Monthly = append(p.Losses.Monthly, [2]interface{}{m.Name, m.MeanLossW})
	}
	for _, s := range d.Seasonal {
		p.Production.Seasonal = append(p.Production.Seasonal, [2]interface{}{s.Season, s.ProductionLiters})
		p.Efficiency.SeasonalGOR = append(p.Efficiency.SeasonalGOR, [2]interface{}{s.Season, s.MeanGOR})
		p.Losses.Seasonal = append(p.Losses.Seasonal, [2]interface{}{s.Season, s.MeanLossW})
	}

	k := d.Annual
	p.Production.Annual = k.TotalProductionLiters
	p.Production.DailyMean = k.MeanDailyProduction
	p.Radiation.Mean = k.MeanRadiation
	p.Radiation.Max = radMax
	p.Radiation.Min = radMin
	p.Efficiency.MeanGOR = k.MeanGOR
	p.Temperature.AmbientMean = k.MeanAmbientTempC
	p.Temperature.WaterMean = k.MeanWaterTempC
	p.Losses.Mean = k.MeanLossW
	p.Stats.HighProductionDays = k.HighProductionDays
	p.Stats.LowProductionDays = k.LowProductionDays
	p.Stats.CorrRadiationProd = k.CorrRadiationProd
	p.Stats.CorrHumidityProd = k.CorrHumidityProd
	p.Stats.CaptureArea = d.Params.CaptureArea
	p.Stats.ThermalEfficiency = k.MeanEfficiencyPct

	if _, err := io.WriteString(w, "const datosSimulacion = "); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode dashboard data: %w", err)
	}
	_, err := io.WriteString(w, jsHelpers)
	return err
}

const jsHelpers = `
// Funciones auxiliares para formateo
function formatearNumero(numero, decimales = 2) {
    return numero.toFixed(decimales).replace('.', ',');
}

function formatearFecha(fecha) {
    const date = new Date(fecha);
    return date.toLocaleDateString('es-ES');
}
`
