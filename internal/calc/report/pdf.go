package report

import (
	"bytes"
	"fmt"
	"io"

	analysis "Meyerhof/internal/calc/analysis"

	"github.com/phpdave11/gofpdf"
)

type column struct {
	title string
	width float64
}

// PDF writes a summary of r followed by one landscape page per chart.
func PDF(w io.Writer, r analysis.Report, charts []Chart) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(r.Title, true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Run %s - page %d", r.RunID, pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	title := r.Title
	if title == "" {
		title = "Bearing Capacity Report"
	}
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Method: %s (%s)", r.Method.Name, r.Method.Kind)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Water table depth: %.2f m", r.WaterTableM))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", r.CreatedAt.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Grid: %d points, qult %.1f to %.1f kPa, %d two-layer",
		r.Summary.Points, r.Summary.MinQultKPa, r.Summary.MaxQultKPa, r.Summary.TwoLayer))
	pdf.Ln(10)

	section(pdf, "Stratigraphy")
	strata := []column{{"ID", 10}, {"Description", 50}, {"Top (m)", 18}, {"Bottom (m)", 20},
		{"g moist", 20}, {"g sat", 18}, {"c (kPa)", 18}, {"phi (deg)", 20}}
	header(pdf, strata)
	for _, s := range r.Strata {
		row(pdf, strata, []string{
			fmt.Sprint(s.ID), tr(s.Description), f2(s.TopM), f2(s.BottomM),
			f2(s.GammaMoistKNM3), f2(s.GammaSatKNM3), f2(s.CohesionKPa), f2(s.PhiDeg),
		})
	}
	pdf.Ln(6)

	if len(r.Outcomes) > 0 {
		section(pdf, "Footing check")
		checks := []column{{"Support", 22}, {"B x L (m)", 26}, {"Df (m)", 16}, {"Load (kN)", 22},
			{"Capacity", 22}, {"Demand", 22}, {"Ratio", 16}, {"Status", 34}}
		header(pdf, checks)
		for _, o := range r.Outcomes {
			if o.Result == nil {
				row(pdf, checks, []string{tr(o.Support), "", "", "", "", "", "", "error"})
				continue
			}
			c := o.Result
			status := "NOT OK"
			if c.Pass {
				status = "OK"
			}
			row(pdf, checks, []string{
				tr(c.Support), fmt.Sprintf("%.2f x %.2f", c.WidthM, c.LengthM), f2(c.DepthM),
				f2(c.DesignLoadKN), f2(c.CapacityKPa), f2(c.DemandKPa), f2(c.Ratio), status,
			})
		}
		for _, o := range r.Outcomes {
			if o.Error != "" {
				pdf.SetFont("Helvetica", "", 9)
				pdf.MultiCell(0, 5, tr(fmt.Sprintf("%s: %s", o.Support, o.Error)), "", "L", false)
			}
		}
	}

	for _, c := range charts {
		pdf.AddPageFormat("L", gofpdf.SizeType{Wd: 210, Ht: 297})
		section(pdf, c.Key)
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader(c.Key, opts, bytes.NewReader(c.PNG))
		pdf.ImageOptions(c.Key, 10, 25, 277, 0, false, opts, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building PDF: %w", err)
	}
	return pdf.Output(w)
}

func f2(v float64) string { return fmt.Sprintf("%.2f", v) }

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func header(pdf *gofpdf.Fpdf, cols []column) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(242, 242, 242)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func row(pdf *gofpdf.Fpdf, cols []column, values []string) {
	pdf.SetFont("Helvetica", "", 9)
	for i, c := range cols {
		pdf.CellFormat(c.width, 6, values[i], "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
}
