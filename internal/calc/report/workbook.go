package report

import (
	"fmt"

	analysis "Meyerhof/internal/calc/analysis"
	bearing "Meyerhof/internal/calc/bearing"

	"github.com/xuri/excelize/v2"
)

const (
	SheetCapacity = "Capacity_Charts"
	SheetCheck    = "bearing_capacity_check"

	titleCapacity = "Surface Bearing Capacity Results"
	titleCheck    = "Bearing Capacity Check"

	headerRow = 3
	dataRow   = 4
	colWidth  = 17
)

type styles struct {
	title, header, number, text int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"BFBFBF"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
		Border:    border,
		Alignment: center,
	}); err != nil {
		return s, err
	}
	// built-in format 2 is 0.00
	if s.number, err = f.NewStyle(&excelize.Style{Border: border, NumFmt: 2, Alignment: center}); err != nil {
		return s, err
	}
	if s.text, err = f.NewStyle(&excelize.Style{Border: border, Alignment: center}); err != nil {
		return s, err
	}
	return s, nil
}

// capacityLabel names the capacity column after the method kind.
func capacityLabel(m bearing.DesignMethod) string {
	if m.Kind == bearing.KindLRFD {
		return "Factored Resistance (kPa)"
	}
	return "Allowable Capacity (kPa)"
}

// Workbook writes the capacity grid and the footing checks of r.
func Workbook(r analysis.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetName("Sheet1", SheetCapacity); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetCheck); err != nil {
		return nil, err
	}

	capHeaders := []string{
		"Embedment Depth (m)", "Footing Base (m)", "Footing Length (m)", "B/L Ratio",
		"Embedment Stratum ID", "Embedment Stratum", "Two-Layer", "Bottom Stratum ID",
		"c1 (kPa)", "phi1 (deg)", "c2 (kPa)", "phi2 (deg)",
		"Single-Layer Capacity (kPa)", "Ultimate Capacity (kPa)", capacityLabel(r.Method),
	}
	rows := make([][]any, len(r.Combinations))
	for i, c := range r.Combinations {
		rows[i] = []any{
			c.DepthM, c.WidthM, c.LengthM, c.RatioBL,
			c.StratumID, c.StratumDescription, yesNo(c.TwoLayer), c.BottomStratumID,
			c.Cohesion1KPa, c.Phi1Deg, c.Cohesion2KPa, c.Phi2Deg,
			c.QultSingleKPa, c.QultKPa, c.CapacityKPa,
		}
	}
	if err := writeTable(f, st, SheetCapacity, titleCapacity, capHeaders, rows); err != nil {
		return nil, err
	}

	checkHeaders := []string{
		"Support", "B (m)", "L (m)", "Df (m)", "Design Load (kN)", "Stratum ID",
		"Ultimate Capacity (kPa)", capacityLabel(r.Method), "Demand (kPa)", "Capacity / Demand", "Status",
	}
	rows = make([][]any, len(r.Outcomes))
	for i, o := range r.Outcomes {
		if o.Result == nil {
			rows[i] = []any{o.Support, "", "", "", "", "", "", "", "", "", o.Error}
			continue
		}
		c := o.Result
		status := "NOT OK"
		if c.Pass {
			status = "OK"
		}
		rows[i] = []any{
			c.Support, c.WidthM, c.LengthM, c.DepthM, c.DesignLoadKN, c.StratumID,
			c.QultKPa, c.CapacityKPa, c.DemandKPa, c.Ratio, status,
		}
	}
	if err := writeTable(f, st, SheetCheck, titleCheck, checkHeaders, rows); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func writeTable(f *excelize.File, st styles, sheet, title string, headers []string, rows [][]any) error {
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", last+"1"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", st.title); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheet, 1, 24); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", last, colWidth); err != nil {
		return err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A3", fmt.Sprintf("%s%d", last, headerRow), st.header); err != nil {
		return err
	}

	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, dataRow+r)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			style := st.text
			if _, ok := v.(float64); ok {
				style = st.number
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}
