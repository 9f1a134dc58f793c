package arbitrage

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Zone and band colors, carried over from the published figures.
var (
	zoneColors = map[Zone]color.Color{
		ZoneBuy:     color.RGBA{R: 0x1b, G: 0x9e, B: 0x77, A: 0xff},
		ZoneNeutral: color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff},
		ZoneSell:    color.RGBA{R: 0xd9, G: 0x5f, B: 0x02, A: 0xff},
	}
	bandFillColor    = color.RGBA{R: 0xcd, G: 0xd1, B: 0xff, A: 0x59}
	bandLineColor    = color.RGBA{R: 0x6b, G: 0x70, B: 0xc3, A: 0xff}
	pickLineColor    = color.RGBA{R: 0x0b, G: 0x5b, B: 0xc4, A: 0xff}
	baselineDotColor = color.RGBA{R: 0x4f, G: 0x6c, B: 0xd6, A: 0xff}
)

// medianPoints carries bucket medians with their q25-q75 spread for error
// bars.
type medianPoints struct {
	plotter.XYs
	plotter.YErrors
}

// PlotArbitrageMap renders the bucket medians against the FA price band as a
// PNG: shaded 25th-75th band, dashed FA median, bucket median line with
// interquartile error bars, and zone-colored markers.
func PlotArbitrageMap(table []BucketSummary, band Band, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Pick bucket"
	p.Y.Label.Text = "$ per WAR (per season)"

	n := len(table)
	if n == 0 {
		return fmt.Errorf("empty bucket table")
	}

	// FA band fill across the full width.
	bandPoly, err := plotter.NewPolygon(plotter.XYs{
		{X: -0.5, Y: band.Q25},
		{X: float64(n) - 0.5, Y: band.Q25},
		{X: float64(n) - 0.5, Y: band.Q75},
		{X: -0.5, Y: band.Q75},
	})
	if err != nil {
		return fmt.Errorf("band polygon: %w", err)
	}
	bandPoly.Color = bandFillColor
	bandPoly.LineStyle.Width = 0
	p.Add(bandPoly)

	medianLine, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: band.Q50},
		{X: float64(n) - 0.5, Y: band.Q50},
	})
	if err != nil {
		return fmt.Errorf("FA median line: %w", err)
	}
	medianLine.Color = bandLineColor
	medianLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(medianLine)
	p.Legend.Add("FA median $/WAR", medianLine)

	points := medianPoints{
		XYs:     make(plotter.XYs, n),
		YErrors: make(plotter.YErrors, n),
	}
	labels := make([]string, n)
	maxY := band.Q75
	for i, row := range table {
		points.XYs[i] = plotter.XY{X: float64(i), Y: row.Median}
		points.YErrors[i].Low = row.Median - row.Q25
		points.YErrors[i].High = row.Q75 - row.Median
		labels[i] = string(row.Bucket)
		if row.Q75 > maxY {
			maxY = row.Q75
		}
	}

	line, err := plotter.NewLine(points.XYs)
	if err != nil {
		return fmt.Errorf("median line: %w", err)
	}
	line.Color = pickLineColor
	line.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("Rookie median $/WAR", line)

	errBars, err := plotter.NewYErrorBars(points)
	if err != nil {
		return fmt.Errorf("error bars: %w", err)
	}
	errBars.Color = pickLineColor
	p.Add(errBars)

	// One scatter per zone so markers carry the zone color.
	for _, zone := range []Zone{ZoneBuy, ZoneNeutral, ZoneSell} {
		var xys plotter.XYs
		for i, row := range table {
			if row.Zone == zone {
				xys = append(xys, plotter.XY{X: float64(i), Y: row.Median})
			}
		}
		if len(xys) == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("zone scatter: %w", err)
		}
		scatter.GlyphStyle.Color = zoneColors[zone]
		scatter.GlyphStyle.Radius = vg.Points(5)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add(string(zone), scatter)
	}

	p.NominalX(labels...)
	p.X.Min, p.X.Max = -0.5, float64(n)-0.5
	p.Y.Min, p.Y.Max = 0, maxY*1.25
	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// PlotScenarioBars renders one horizontal surplus bar chart per scenario,
// stacked vertically in a single PNG. Bars are in millions, colored by the
// scenario's zone classification, with the baseline surplus overlaid as
// markers for comparison.
func PlotScenarioBars(baseline []BucketSummary, scenarios []Scenario, tables [][]BucketSummary, path string) error {
	if len(scenarios) == 0 || len(scenarios) != len(tables) {
		return fmt.Errorf("scenario/table count mismatch: %d vs %d", len(scenarios), len(tables))
	}
	baselineSurplus := make(map[Bucket]float64, len(baseline))
	for _, row := range baseline {
		baselineSurplus[row.Bucket] = row.Surplus / million
	}

	plots := make([][]*plot.Plot, len(scenarios))
	for i, scenario := range scenarios {
		p := plot.New()
		p.Title.Text = scenario.Title
		p.Y.Label.Text = "Pick bucket"
		if i == len(scenarios)-1 {
			p.X.Label.Text = "Scenario surplus vs FA (millions $ over rookie window)"
		}

		table := tables[i]
		labels := make([]string, len(table))
		for j, row := range table {
			labels[j] = string(row.Bucket)
		}
		for _, zone := range []Zone{ZoneBuy, ZoneNeutral, ZoneSell} {
			vals := make(plotter.Values, len(table))
			used := false
			for j, row := range table {
				if row.Zone == zone {
					vals[j] = row.Surplus / million
					used = true
				}
			}
			if !used {
				continue
			}
			bars, err := plotter.NewBarChart(vals, vg.Points(14))
			if err != nil {
				return fmt.Errorf("scenario %s bars: %w", scenario.Name, err)
			}
			bars.Horizontal = true
			bars.Color = zoneColors[zone]
			bars.LineStyle.Width = 0
			p.Add(bars)
		}

		zero, err := plotter.NewLine(plotter.XYs{
			{X: 0, Y: -0.5},
			{X: 0, Y: float64(len(table)) - 0.5},
		})
		if err != nil {
			return fmt.Errorf("zero line: %w", err)
		}
		zero.Color = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
		p.Add(zero)

		var basePts plotter.XYs
		for j, row := range table {
			if v, ok := baselineSurplus[row.Bucket]; ok {
				basePts = append(basePts, plotter.XY{X: v, Y: float64(j)})
			}
		}
		if len(basePts) > 0 {
			baseScatter, err := plotter.NewScatter(basePts)
			if err != nil {
				return fmt.Errorf("baseline overlay: %w", err)
			}
			baseScatter.GlyphStyle.Color = baselineDotColor
			baseScatter.GlyphStyle.Radius = vg.Points(3)
			baseScatter.GlyphStyle.Shape = draw.RingGlyph{}
			p.Add(baseScatter)
			p.Legend.Add("Baseline surplus", baseScatter)
			p.Legend.Top = false
		}

		p.NominalY(labels...)
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.New(8*vg.Inch, vg.Length(4*len(scenarios))*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: len(scenarios), Cols: 1, PadY: vg.Points(8)}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
