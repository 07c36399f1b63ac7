// Package importer reads bearing capacity projects from Excel workbooks.
//
// Sheet geotechnical_input holds the title (C2), method (C4), water table
// depth (C5), the Df list (row 9), the B list (row 10), optional L/B ratios
// (row 11, DefaultRatios when blank) and one stratum per row from row 13 in columns B to I. Sheet
// footing_configuration holds one footing per row from row 3 in columns B
// to F. C6 and C7 hold load inclinations, which are not used.
package importer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	analysis "Meyerhof/internal/calc/analysis"
	soil "Meyerhof/internal/soil"

	"github.com/xuri/excelize/v2"
)

const (
	SheetInput    = "geotechnical_input"
	SheetFootings = "footing_configuration"

	rowDepths    = 9
	rowWidths    = 10
	rowRatios    = 11
	rowStrata    = 13
	rowFootings  = 3
	firstListCol = 3 // C
	maxListLen   = 200
	maxRows      = 10000
)

// DefaultRatios are the L/B ratios used when row 11 is left blank.
var DefaultRatios = []float64{1, 1.25, 1.5, 2, 5, 10}

// CellError points at the cell that could not be read.
type CellError struct {
	Sheet string
	Cell  string
	Value string
	Err   error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%s!%s: cannot read %q: %v", e.Sheet, e.Cell, e.Value, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

type sheetReader struct {
	f     *excelize.File
	sheet string
}

func (s sheetReader) text(col, row int) (string, string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", "", err
	}
	v, err := s.f.GetCellValue(s.sheet, cell)
	if err != nil {
		return cell, "", &CellError{Sheet: s.sheet, Cell: cell, Err: err}
	}
	return cell, strings.TrimSpace(v), nil
}

func (s sheetReader) number(col, row int) (float64, error) {
	cell, v, err := s.text(col, row)
	if err != nil {
		return 0, err
	}
	x, err := parseNumber(v)
	if err != nil {
		return 0, &CellError{Sheet: s.sheet, Cell: cell, Value: v, Err: err}
	}
	return x, nil
}

// list reads numbers along row from column C until the first blank cell.
func (s sheetReader) list(row int) ([]float64, error) {
	var out []float64
	for col := firstListCol; col < firstListCol+maxListLen; col++ {
		_, v, err := s.text(col, row)
		if err != nil {
			return nil, err
		}
		if v == "" {
			break
		}
		x, err := s.number(col, row)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

// parseNumber accepts a decimal comma as written by some Excel locales.
func parseNumber(v string) (float64, error) {
	if v == "" {
		return 0, fmt.Errorf("empty cell")
	}
	return strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
}

// Load reads a workbook from r.
func Load(r io.Reader) (analysis.Input, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return analysis.Input{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// LoadFile reads the workbook at path.
func LoadFile(path string) (analysis.Input, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return analysis.Input{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read extracts the project from an open workbook. The footing sheet is
// optional.
func Read(f *excelize.File) (analysis.Input, error) {
	if idx, _ := f.GetSheetIndex(SheetInput); idx < 0 {
		return analysis.Input{}, fmt.Errorf("workbook has no %s sheet", SheetInput)
	}
	s := sheetReader{f: f, sheet: SheetInput}

	var in analysis.Input
	var err error
	if _, in.Title, err = s.text(3, 2); err != nil {
		return in, err
	}
	_, method, err := s.text(3, 4)
	if err != nil {
		return in, err
	}
	// a bare number is a custom safety factor
	if fs, perr := parseNumber(method); perr == nil {
		in.SafetyFactor = fs
	} else {
		in.Method = method
	}
	if in.WaterTableM, err = s.number(3, 5); err != nil {
		return in, err
	}
	if in.DepthsM, err = s.list(rowDepths); err != nil {
		return in, err
	}
	if in.WidthsM, err = s.list(rowWidths); err != nil {
		return in, err
	}
	if in.Ratios, err = s.list(rowRatios); err != nil {
		return in, err
	}
	if len(in.Ratios) == 0 {
		in.Ratios = append([]float64(nil), DefaultRatios...)
	}
	if in.Strata, err = readStrata(s); err != nil {
		return in, err
	}
	if idx, _ := f.GetSheetIndex(SheetFootings); idx >= 0 {
		if in.Footings, err = readFootings(sheetReader{f: f, sheet: SheetFootings}); err != nil {
			return in, err
		}
	}
	return in, nil
}

func readStrata(s sheetReader) ([]soil.Stratum, error) {
	var out []soil.Stratum
	for row := rowStrata; row < rowStrata+maxRows; row++ {
		_, id, err := s.text(2, row)
		if err != nil {
			return nil, err
		}
		if id == "" {
			break
		}
		var st soil.Stratum
		n, err := s.number(2, row)
		if err != nil {
			return nil, err
		}
		if n != math.Trunc(n) {
			cell, _ := excelize.CoordinatesToCellName(2, row)
			return nil, &CellError{Sheet: s.sheet, Cell: cell, Value: id, Err: fmt.Errorf("stratum id must be an integer")}
		}
		st.ID = int(n)
		if _, st.Description, err = s.text(3, row); err != nil {
			return nil, err
		}
		fields := []*float64{&st.TopM, &st.BottomM, &st.GammaMoistKNM3, &st.GammaSatKNM3, &st.CohesionKPa, &st.PhiDeg}
		for i, dst := range fields {
			if *dst, err = s.number(4+i, row); err != nil {
				return nil, err
			}
		}
		out = append(out, st)
	}
	return out, nil
}

func readFootings(s sheetReader) ([]analysis.Footing, error) {
	var out []analysis.Footing
	for row := rowFootings; row < rowFootings+maxRows; row++ {
		_, support, err := s.text(2, row)
		if err != nil {
			return nil, err
		}
		if support == "" {
			break
		}
		ft := analysis.Footing{Support: support}
		fields := []*float64{&ft.WidthM, &ft.LengthM, &ft.DepthM, &ft.LoadKN}
		for i, dst := range fields {
			if *dst, err = s.number(3+i, row); err != nil {
				return nil, err
			}
		}
		out = append(out, ft)
	}
	return out, nil
}

// Write lays in out in the layout Read expects. Dead and live loads are
// not representable; footings carry their design load only.
func Write(in analysis.Input) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetInput); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetFootings); err != nil {
		return nil, err
	}

	method := in.Method
	if in.SafetyFactor != 0 {
		method = strconv.FormatFloat(in.SafetyFactor, 'f', -1, 64)
	}
	cells := map[string]any{
		"B2": "Project", "C2": in.Title,
		"B4": "Method", "C4": method,
		"B5": "GWL (m)", "C5": in.WaterTableM,
		"B6": "Inclination (deg)", "C6": 0,
		"B7": "Inclination (deg)", "C7": 0,
		"B9": "Df (m)", "B10": "B (m)", "B11": "L/B",
	}
	for cell, v := range cells {
		if err := f.SetCellValue(SheetInput, cell, v); err != nil {
			return nil, err
		}
	}
	for row, list := range map[int][]float64{rowDepths: in.DepthsM, rowWidths: in.WidthsM, rowRatios: in.Ratios} {
		for i, v := range list {
			if err := setCell(f, SheetInput, firstListCol+i, row, v); err != nil {
				return nil, err
			}
		}
	}

	header := []any{"ID", "Description", "Top (m)", "Bottom (m)", "γ moist (kN/m³)", "γ sat (kN/m³)", "c (kPa)", "φ (deg)"}
	if err := f.SetSheetRow(SheetInput, "B12", &header); err != nil {
		return nil, err
	}
	for i, st := range in.Strata {
		row := []any{st.ID, st.Description, st.TopM, st.BottomM, st.GammaMoistKNM3, st.GammaSatKNM3, st.CohesionKPa, st.PhiDeg}
		cell, _ := excelize.CoordinatesToCellName(2, rowStrata+i)
		if err := f.SetSheetRow(SheetInput, cell, &row); err != nil {
			return nil, err
		}
	}

	header = []any{"Support", "B (m)", "L (m)", "Df (m)", "Load (kN)"}
	if err := f.SetSheetRow(SheetFootings, "B2", &header); err != nil {
		return nil, err
	}
	for i, ft := range in.Footings {
		row := []any{ft.Support, ft.WidthM, ft.LengthM, ft.DepthM, ft.LoadKN}
		cell, _ := excelize.CoordinatesToCellName(2, rowFootings+i)
		if err := f.SetSheetRow(SheetFootings, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, v)
}
