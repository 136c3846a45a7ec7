// Package plot renders the run's PNG charts: the daily production/radiation
// series and the monthly production bars. Charts are drawn directly onto an
// RGBA canvas, no plotting framework.
package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/models"
)

const (
	chartWidth  = 1000
	chartHeight = 520

	marginLeft   = 70
	marginRight  = 30
	marginTop    = 50
	marginBottom = 50
)

var (
	background = color.RGBA{250, 252, 253, 255}
	axisColor  = color.RGBA{90, 100, 110, 255}
	gridColor  = color.RGBA{220, 228, 232, 255}
	prodColor  = color.RGBA{0, 119, 182, 255}
	radColor   = color.RGBA{230, 140, 30, 255}
	textColor  = color.RGBA{40, 50, 58, 255}
)

// WriteDailyChart renders the daily production line with the radiation series
// overlaid on a secondary scale.
func WriteDailyChart(w io.Writer, year int, days []models.DailyResult) error {
	if len(days) < 2 {
		return fmt.Errorf("daily chart: need at least two days, got %d", len(days))
	}

	img := newCanvas()
	title := fmt.Sprintf("Producción diaria y radiación solar — %d", year)
	drawText(img, title, marginLeft, 25, textColor)

	var prodMax, radMax float64
	for _, d := range days {
		if d.ProductionLiters > prodMax {
			prodMax = d.ProductionLiters
		}
		if d.Radiation > radMax {
			radMax = d.Radiation
		}
	}
	if prodMax == 0 {
		prodMax = 1
	}
	if radMax == 0 {
		radMax = 1
	}

	drawFrame(img)
	drawYLabels(img, prodMax, "L")

	plotW := chartWidth - marginLeft - marginRight
	plotH := chartHeight - marginTop - marginBottom

	// Radiation first so production draws on top.
	for i := 1; i < len(days); i++ {
		x0 := marginLeft + (i-1)*plotW/(len(days)-1)
		x1 := marginLeft + i*plotW/(len(days)-1)
		y0 := marginTop + plotH - int(days[i-1].Radiation/radMax*float64(plotH))
		y1 := marginTop + plotH - int(days[i].Radiation/radMax*float64(plotH))
		drawLine(img, x0, y0, x1, y1, radColor)
	}
	for i := 1; i < len(days); i++ {
		x0 := marginLeft + (i-1)*plotW/(len(days)-1)
		x1 := marginLeft + i*plotW/(len(days)-1)
		y0 := marginTop + plotH - int(days[i-1].ProductionLiters/prodMax*float64(plotH))
		y1 := marginTop + plotH - int(days[i].ProductionLiters/prodMax*float64(plotH))
		drawLine(img, x0, y0, x1, y1, prodColor)
	}

	// Month boundary ticks.
	lastMonth := 0
	for i, d := range days {
		if d.Month != lastMonth {
			lastMonth = d.Month
			x := marginLeft + i*plotW/(len(days)-1)
			drawVLine(img, x, marginTop, marginTop+plotH, gridColor)
			drawText(img, fmt.Sprintf("%02d", d.Month), x-7, chartHeight-marginBottom+18, axisColor)
		}
	}

	drawText(img, "producción (L)", marginLeft, chartHeight-14, prodColor)
	drawText(img, fmt.Sprintf("radiación (máx %.0f W/m²)", radMax), marginLeft+150, chartHeight-14, radColor)

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode daily chart: %w", err)
	}
	return nil
}

// WriteMonthlyChart renders the monthly production bar chart.
func WriteMonthlyChart(w io.Writer, year int, monthly []models.MonthlySummary) error {
	if len(monthly) == 0 {
		return fmt.Errorf("monthly chart: no data")
	}

	img := newCanvas()
	drawText(img, fmt.Sprintf("Producción mensual de agua destilada — %d", year), marginLeft, 25, textColor)

	var max float64
	for _, m := range monthly {
		if m.ProductionLiters > max {
			max = m.ProductionLiters
		}
	}
	if max == 0 {
		max = 1
	}

	drawFrame(img)
	drawYLabels(img, max, "L")

	plotW := chartWidth - marginLeft - marginRight
	plotH := chartHeight - marginTop - marginBottom
	slot := plotW / len(monthly)

	for i, m := range monthly {
		h := int(m.ProductionLiters / max * float64(plotH))
		x0 := marginLeft + i*slot + slot/6
		x1 := marginLeft + (i+1)*slot - slot/6
		for x := x0; x < x1; x++ {
			drawVLine(img, x, marginTop+plotH-h, marginTop+plotH, prodColor)
		}
		label := m.Name
		if len(label) > 3 {
			label = label[:3]
		}
		drawText(img, label, x0, chartHeight-marginBottom+18, axisColor)
		drawText(img, fmt.Sprintf("%.1f", m.ProductionLiters), x0, marginTop+plotH-h-6, textColor)
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode monthly chart: %w", err)
	}
	return nil
}

func newCanvas() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, chartWidth, chartHeight))
	for y := 0; y < chartHeight; y++ {
		for x := 0; x < chartWidth; x++ {
			img.SetRGBA(x, y, background)
		}
	}
	return img
}

func drawFrame(img *image.RGBA) {
	bottom := chartHeight - marginBottom
	right := chartWidth - marginRight
	drawVLine(img, marginLeft, marginTop, bottom, axisColor)
	for x := marginLeft; x <= right; x++ {
		img.SetRGBA(x, bottom, axisColor)
	}
}

func drawYLabels(img *image.RGBA, max float64, unit string) {
	plotH := chartHeight - marginTop - marginBottom
	for i := 0; i <= 4; i++ {
		y := marginTop + plotH - i*plotH/4
		if i > 0 {
			for x := marginLeft + 1; x < chartWidth-marginRight; x++ {
				img.SetRGBA(x, y, gridColor)
			}
		}
		label := fmt.Sprintf("%.2f %s", max*float64(i)/4, unit)
		drawText(img, label, 6, y+4, axisColor)
	}
}

func drawVLine(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x, y, c)
	}
}

// drawLine draws with integer interpolation; slopes here are gentle enough
// that Bresenham would be overkill.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := x1 - x0
	if dx <= 0 {
		drawVLine(img, x0, min(y0, y1), max(y0, y1), c)
		return
	}
	for x := x0; x <= x1; x++ {
		y := y0 + (y1-y0)*(x-x0)/dx
		img.SetRGBA(x, y, c)
		img.SetRGBA(x, y+1, c)
	}
}

func drawText(img *image.RGBA, text string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
