package exporter

import (
	"fmt"
	"io"

	"DuctSizer/internal/calc/duct"
	"DuctSizer/internal/view"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	tableSheet   = "Velocity Options"
	curveSheet   = "Sizing Chart"
)

// WriteWorkbook writes res as an xlsx workbook: a summary sheet, the velocity
// options table and the sizing curve with a line chart of it.
func WriteWorkbook(w io.Writer, res duct.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if err := writeSummary(f, res); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeTable(f, res.Table); err != nil {
		return fmt.Errorf("velocity sheet: %w", err)
	}
	if err := writeCurve(f, res.Curve); err != nil {
		return fmt.Errorf("chart sheet: %w", err)
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeSummary(f *excelize.File, res duct.Result) error {
	in := res.Input
	rows := [][]interface{}{
		{"Input", "Value", "Unit"},
		{"Airflow", in.CFM, "CFM"},
		{"Design Velocity", in.VelocityFPM, "FPM"},
		{"Duct Shape", string(in.Shape)},
	}
	if res.Rect != nil {
		rows = append(rows, []interface{}{"Width/Height Ratio", in.AspectRatio})
	}
	rows = append(rows,
		[]interface{}{"Friction Rate", in.FrictionRate, "in.wg/100ft"},
		[]interface{}{},
		[]interface{}{"Result", "Value", "Unit"},
		[]interface{}{"Cross-Sectional Area", res.AreaSqFt, "ft²"},
	)
	switch {
	case res.Round != nil:
		rows = append(rows,
			[]interface{}{"Round Diameter", res.Round.DiameterIn, "in"},
			[]interface{}{"Nearest Standard", res.Round.StandardIn, "in"},
			[]interface{}{"Difference", res.Round.DiffIn, "in"},
		)
	case res.Rect != nil:
		rows = append(rows,
			[]interface{}{"Width", res.Rect.WidthIn, "in"},
			[]interface{}{"Height", res.Rect.HeightIn, "in"},
			[]interface{}{"Nearest Standard Width", res.Rect.StandardWidthIn, "in"},
			[]interface{}{"Nearest Standard Height", res.Rect.StandardHeightIn, "in"},
		)
	}
	rows = append(rows, []interface{}{"Velocity Pressure", res.VelocityPressure, "in.wg"})

	if err := setRows(f, summarySheet, rows); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "A", "A", 26)
}

func writeTable(f *excelize.File, table []duct.TableRow) error {
	if _, err := f.NewSheet(tableSheet); err != nil {
		return err
	}
	header := make([]interface{}, len(view.TableColumns))
	for i, c := range view.TableColumns {
		header[i] = c
	}
	rows := [][]interface{}{header}
	for _, r := range table {
		rows = append(rows, []interface{}{r.VelocityFPM, r.AreaSqFt, r.DiameterIn})
	}
	if err := setRows(f, tableSheet, rows); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return err
	}
	last := fmt.Sprintf("C%d", len(rows))
	return f.SetCellStyle(tableSheet, "B2", last, style)
}

func writeCurve(f *excelize.File, curve []duct.CurvePoint) error {
	if _, err := f.NewSheet(curveSheet); err != nil {
		return err
	}
	rows := [][]interface{}{{view.ChartXTitle, view.SeriesName}}
	for _, p := range curve {
		rows = append(rows, []interface{}{p.CFM, p.DiameterIn})
	}
	if err := setRows(f, curveSheet, rows); err != nil {
		return err
	}
	if len(curve) == 0 {
		return nil
	}
	ref := func(col string) string {
		return fmt.Sprintf("'%s'!$%s$2:$%s$%d", curveSheet, col, col, len(curve)+1)
	}
	return f.AddChart(curveSheet, "D2", &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", curveSheet),
			Categories: ref("A"),
			Values:     ref("B"),
		}},
		Title:  []excelize.RichTextRun{{Text: view.ChartTitle}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		XAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: view.ChartXTitle}},
		},
		YAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: view.ChartYTitle}},
		},
		Dimension: excelize.ChartDimension{Width: 640, Height: 360},
	})
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
