package report

import (
	"bytes"
	"fmt"
	"sort"

	analysis "Meyerhof/internal/calc/analysis"
	bearing "Meyerhof/internal/calc/bearing"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Chart is the pair of capacity charts for one embedment depth.
type Chart struct {
	Key    string
	DepthM float64
	PNG    []byte
}

const (
	chartWidth  = 14 * vg.Inch
	chartHeight = 6 * vg.Inch
	chartDPI    = 96
)

// Charts draws, for every Df of the grid, ultimate and method capacity
// against B/L with one dashed series per footing width. Charts are ordered
// by Df.
func Charts(r analysis.Report) ([]Chart, error) {
	byDepth := make(map[float64][]bearing.CombinationResult)
	var depths []float64
	for _, c := range r.Combinations {
		if _, ok := byDepth[c.DepthM]; !ok {
			depths = append(depths, c.DepthM)
		}
		byDepth[c.DepthM] = append(byDepth[c.DepthM], c)
	}
	sort.Float64s(depths)

	out := make([]Chart, 0, len(depths))
	for _, df := range depths {
		rows := byDepth[df]
		stratum := rows[0].StratumDescription
		qult, err := capacityPlot(rows, fmt.Sprintf("Ultimate Bearing Capacity for Df= %.2f m - %s", df, stratum),
			"Ultimate Bearing Capacity (kPa)", func(c bearing.CombinationResult) float64 { return c.QultKPa })
		if err != nil {
			return nil, err
		}
		qadm, err := capacityPlot(rows, fmt.Sprintf("%s for Df= %.2f m - %s", chartLabel(r.Method), df, stratum),
			chartLabel(r.Method)+" (kPa)", func(c bearing.CombinationResult) float64 { return c.CapacityKPa })
		if err != nil {
			return nil, err
		}
		png, err := render(qult, qadm)
		if err != nil {
			return nil, fmt.Errorf("chart Df = %.2f m: %w", df, err)
		}
		out = append(out, Chart{Key: fmt.Sprintf("Df_%.2fm", df), DepthM: df, PNG: png})
	}
	return out, nil
}

func chartLabel(m bearing.DesignMethod) string {
	if m.Kind == bearing.KindLRFD {
		return "Factored Bearing Resistance"
	}
	return "Allowable Bearing Capacity"
}

// capacityPlot keeps B/L in [0.1, 1] and pads the y range by 10 %.
func capacityPlot(rows []bearing.CombinationResult, title, yLabel string, value func(bearing.CombinationResult) float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(13)
	p.X.Label.Text = "B/L Ratio"
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	grid.Horizontal.Dashes = grid.Vertical.Dashes
	p.Add(grid)

	series := make(map[float64]plotter.XYs)
	var widths, ys []float64
	for _, c := range rows {
		if c.RatioBL < 0.1 || c.RatioBL > 1 {
			continue
		}
		if _, ok := series[c.WidthM]; !ok {
			widths = append(widths, c.WidthM)
		}
		v := value(c)
		series[c.WidthM] = append(series[c.WidthM], plotter.XY{X: c.RatioBL, Y: v})
		ys = append(ys, v)
	}
	sort.Float64s(widths)

	for i, b := range widths {
		pts := series[b]
		sort.Slice(pts, func(a, c int) bool { return pts[a].X < pts[c].X })
		line, scatter, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		scatter.Color = line.Color
		scatter.Shape = plotutil.Shape(i)
		p.Add(line, scatter)
		p.Legend.Add(fmt.Sprintf("B = %.2f m", b), line, scatter)
	}

	if len(ys) > 0 {
		lo, hi := floats.Min(ys), floats.Max(ys)
		pad := (hi - lo) * 0.10
		if pad == 0 {
			pad = 0.10*hi + 1
		}
		p.Y.Min, p.Y.Max = lo-pad, hi+pad
	}
	return p, nil
}

func render(left, right *plot.Plot) ([]byte, error) {
	img := vgimg.NewWith(vgimg.UseWH(chartWidth, chartHeight), vgimg.UseDPI(chartDPI))
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter * 4}
	canvases := plot.Align([][]*plot.Plot{{left, right}}, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ChartWorkbook places every chart on its own sheet named after its key.
func ChartWorkbook(charts []Chart) (*excelize.File, error) {
	f := excelize.NewFile()
	for i, c := range charts {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", c.Key); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(c.Key); err != nil {
			return nil, err
		}
		if err := f.AddPictureFromBytes(c.Key, "A1", &excelize.Picture{
			Extension: ".png",
			File:      c.PNG,
			Format:    &excelize.GraphicOptions{AltText: c.Key},
		}); err != nil {
			return nil, fmt.Errorf("embedding %s: %w", c.Key, err)
		}
	}
	return f, nil
}
