package report

import (
	"fmt"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/weso-m/goodeats/internal/config"
	"github.com/weso-m/goodeats/internal/summary"
)

const (
	chartWidth  = 720
	chartHeight = 420
	chartMargin = 50.0
)

// WriteCharts renders the three summary charts into outDir:
// calorie_summary.png, protein_summary.png, and macros_summary.png.
func WriteCharts(outDir string, summaries []summary.DaySummary, targets config.Targets) error {
	cals := make([]float64, len(summaries))
	prots := make([]float64, len(summaries))
	carbs := make([]float64, len(summaries))
	fats := make([]float64, len(summaries))
	for i, d := range summaries {
		cals[i] = d.Calories
		prots[i] = d.ProteinG
		carbs[i] = d.CarbsG
		fats[i] = d.FatG
	}

	if err := drawBarChart(filepath.Join(outDir, "calorie_summary.png"),
		"Daily Calories vs Target", cals, []float64{targets.CaloriesMin, targets.CaloriesMax}); err != nil {
		return err
	}
	if err := drawBarChart(filepath.Join(outDir, "protein_summary.png"),
		"Daily Protein vs Target", prots, []float64{targets.ProteinMinG}); err != nil {
		return err
	}
	return drawGroupedChart(filepath.Join(outDir, "macros_summary.png"),
		"Daily Macros (P/C/F)", prots, carbs, fats)
}

// drawBarChart renders one bar per day plus dashed horizontal target
// lines.
func drawBarChart(path, title string, values, targetLines []float64) error {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	maxV := chartScale(values, targetLines)
	plotW := float64(chartWidth) - 2*chartMargin
	plotH := float64(chartHeight) - 2*chartMargin
	barW := plotW / float64(len(values)) * 0.6
	step := plotW / float64(len(values))

	dc.SetRGB(0.33, 0.47, 0.68)
	for i, v := range values {
		h := v / maxV * plotH
		x := chartMargin + float64(i)*step + (step-barW)/2
		y := float64(chartHeight) - chartMargin - h
		dc.DrawRectangle(x, y, barW, h)
	}
	dc.Fill()

	dc.SetRGB(0.35, 0.35, 0.35)
	dc.SetDash(6, 4)
	for _, t := range targetLines {
		y := float64(chartHeight) - chartMargin - t/maxV*plotH
		dc.DrawLine(chartMargin, y, float64(chartWidth)-chartMargin, y)
		dc.Stroke()
	}
	dc.SetDash()

	drawChartFrame(dc, title, len(values), step)

	if err := ensureDir(path); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	return nil
}

// drawGroupedChart renders protein/carb/fat triples per day.
func drawGroupedChart(path, title string, prots, carbs, fats []float64) error {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	maxV := chartScale(append(append(append([]float64{}, prots...), carbs...), fats...), nil)
	plotW := float64(chartWidth) - 2*chartMargin
	plotH := float64(chartHeight) - 2*chartMargin
	step := plotW / float64(len(prots))
	barW := step / 4

	groups := [][]float64{prots, carbs, fats}
	colors := [][3]float64{{0.33, 0.47, 0.68}, {0.86, 0.56, 0.26}, {0.45, 0.65, 0.38}}

	for g, series := range groups {
		dc.SetRGB(colors[g][0], colors[g][1], colors[g][2])
		for i, v := range series {
			h := v / maxV * plotH
			x := chartMargin + float64(i)*step + barW/2 + float64(g)*barW
			y := float64(chartHeight) - chartMargin - h
			dc.DrawRectangle(x, y, barW*0.9, h)
		}
		dc.Fill()
	}

	drawChartFrame(dc, title, len(prots), step)

	if err := ensureDir(path); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	return nil
}

// drawChartFrame draws the axes, the title, and day labels.
func drawChartFrame(dc *gg.Context, title string, n int, step float64) {
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetLineWidth(1.5)
	dc.DrawLine(chartMargin, chartMargin/2, chartMargin, float64(chartHeight)-chartMargin)
	dc.DrawLine(chartMargin, float64(chartHeight)-chartMargin, float64(chartWidth)-chartMargin, float64(chartHeight)-chartMargin)
	dc.Stroke()

	dc.DrawStringAnchored(title, float64(chartWidth)/2, chartMargin/2, 0.5, 0.5)
	for i := 0; i < n && i < len(dayNames); i++ {
		x := chartMargin + float64(i)*step + step/2
		dc.DrawStringAnchored(dayNames[i], x, float64(chartHeight)-chartMargin/2, 0.5, 0.5)
	}
}

// chartScale picks a y-axis max with a little headroom above the data
// and any target lines.
func chartScale(values, targetLines []float64) float64 {
	maxV := 1.0
	for _, v := range values {
		if v > maxV {
			maxV = v
		}
	}
	for _, t := range targetLines {
		if t > maxV {
			maxV = t
		}
	}
	return maxV * 1.1
}
