package report

import (
	"fmt"
	"io"
	"text/template"
)

var markdownFuncs = template.FuncMap{
	"f0": func(v float64) string { return fmt.Sprintf("%.0f", v) },
	"f1": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"f2": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"f3": func(v float64) string { return fmt.Sprintf("%.3f", v) },
	"trend": func(rank int) string {
		switch rank {
		case 0:
			return "🟢 Óptima"
		case 1:
			return "🟡 Buena"
		case 2:
			return "🟠 Regular"
		default:
			return "🔴 Baja"
		}
	},
}

var markdownTmpl = template.Must(template.New("informe").Funcs(markdownFuncs).Parse(`# Informe Ejecutivo — Simulación Anual del Desalinizador Solar

Generado: {{.GeneratedAt.Format "2006-01-02 15:04"}} · Año simulado: {{.Year}}

## Indicadores clave

| Indicador | Valor |
|---|---|
| Producción anual de agua destilada | {{f2 .Annual.TotalProductionLiters}} L |
| Producción media diaria | {{f3 .Annual.MeanDailyProduction}} L/día |
| Radiación media | {{f1 .Annual.MeanRadiation}} W/m² |
| GOR medio | {{f3 .Annual.MeanGOR}} |
| GOR anual (ponderado por energía) | {{f3 .Annual.AnnualGOR}} |
| Eficiencia térmica media | {{f1 .Annual.MeanEfficiencyPct}} % |
| Temperatura media del agua | {{f1 .Annual.MeanWaterTempC}} °C |
| Pérdidas térmicas medias | {{f1 .Annual.MeanLossW}} W |
| Área de captación | {{f3 .Params.CaptureArea}} m² |

## Rendimiento estacional

| Estación | Producción (L) | % anual | GOR | Radiación (W/m²) | Tendencia |
|---|---|---|---|---|---|
{{range $i, $s := .SeasonsByProduction -}}
| {{$s.Season}} | {{f2 $s.ProductionLiters}} | {{f1 $s.SharePct}} % | {{f3 $s.MeanGOR}} | {{f1 $s.MeanRadiation}} | {{trend $i}} |
{{end}}
La mejor estación es **{{.Annual.BestSeason}}**.

## Rendimiento mensual

- Mejor mes: **{{.Annual.BestMonth}}** con {{f2 .Annual.BestMonthLiters}} L.
- Peor mes: **{{.Annual.WorstMonth}}** con {{f2 .Annual.WorstMonthLiters}} L.
- Relación mejor/peor mes: {{f1 .MonthRatio}}×.
- Días de alta producción (por encima de la media): {{.Annual.HighProductionDays}}.
- Días de baja producción (por debajo de la mitad de la media): {{.Annual.LowProductionDays}}.

## Correlaciones

- Radiación ↔ producción: {{f3 .Annual.CorrRadiationProd}}
- Humedad ↔ producción: {{f3 .Annual.CorrHumidityProd}}

## Balance energético

- Energía solar incidente: {{f0 .Annual.SolarInputJ}} J
- Energía útil: {{f0 .Annual.UsefulJ}} J ({{f1 .UsefulSharePct}} % de la incidente)
- Energía en evaporación: {{f0 .Annual.EvaporationJ}} J
- Pérdidas: {{f1 .LossSharePct}} % de la energía incidente

## Recomendaciones

{{range .Recommendations -}}
- {{.}}
{{end}}`))

// WriteMarkdown renders the executive summary.
func WriteMarkdown(w io.Writer, d *Data) error {
	if err := markdownTmpl.Execute(w, d); err != nil {
		return fmt.Errorf("render executive summary: %w", err)
	}
	return nil
}

// Recommendations derives operating advice from the annual figures. These are
// threshold rules, not optimization output.
func (d *Data) Recommendations() []string {
	var recs []string
	if d.LossSharePct() > 50 {
		recs = append(recs, "Las pérdidas térmicas superan la mitad de la energía incidente: reforzar el aislamiento de las paredes reduciría pérdidas por conducción.")
	}
	if d.Annual.MeanGOR < 0.3 {
		recs = append(recs, "El GOR medio es bajo: considerar reducir la masa de agua por lote para alcanzar antes la temperatura de evaporación.")
	}
	if d.MonthRatio() > 3 {
		recs = append(recs, fmt.Sprintf("La producción de %s multiplica por %.1f la de %s: un ángulo de inclinación ajustable por estación suavizaría la diferencia.", d.Annual.BestMonth, d.MonthRatio(), d.Annual.WorstMonth))
	}
	if d.Annual.CorrHumidityProd < -0.3 {
		recs = append(recs, "La humedad ambiental penaliza la producción: mejorar la ventilación del condensador en meses húmedos.")
	}
	if len(recs) == 0 {
		recs = append(recs, "El prototipo opera dentro de los márgenes esperados; no se identifican ajustes prioritarios.")
	}
	return recs
}
