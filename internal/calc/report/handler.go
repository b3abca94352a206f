package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"DuctSizer/internal/calc/duct"
	"DuctSizer/internal/view"
	"github.com/phpdave11/gofpdf"
	log "github.com/sirupsen/logrus"
)

type Input struct {
	Project string     `json:"project"`
	Author  string     `json:"author"`
	Title   string     `json:"title"`
	Notes   string     `json:"notes"`
	Duct    duct.Input `json:"duct"`
}

type Handler struct {
	// Now stamps the report date; time.Now when nil.
	Now func() time.Time
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	input := Input{Duct: duct.DefaultInput()}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := h.Write(&buf, input); err != nil {
		if errors.Is(err, duct.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("generate pdf report")
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"duct-report.pdf\"")
	buf.WriteTo(w)
}

// Write renders the sizing report for input as a PDF.
func (h *Handler) Write(out io.Writer, input Input) error {
	res, err := duct.Calculate(input.Duct)
	if err != nil {
		return err
	}
	page := view.Build(res)
	if input.Title == "" {
		input.Title = "Duct Sizing Report"
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(input.Title, true)
	pdf.SetAuthor(input.Author, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(input.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", input.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", input.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", now().Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Inputs")
	in := res.Input
	rows := [][2]string{
		{"Airflow (CFM)", fmt.Sprintf("%.0f", in.CFM)},
		{"Design Velocity (FPM)", fmt.Sprintf("%.0f", in.VelocityFPM)},
		{"Duct Shape", string(in.Shape)},
	}
	if in.Shape == duct.Rectangular {
		rows = append(rows, [2]string{"Width/Height Ratio", fmt.Sprintf("%.1f", in.AspectRatio)})
	}
	rows = append(rows, [2]string{"Friction Rate (in.wg/100ft)", fmt.Sprintf("%.2f", in.FrictionRate)})
	keyValues(pdf, tr, rows)

	section(pdf, "Results")
	keyValues(pdf, tr, [][2]string{
		{page.Area.Label, page.Area.Value},
		{page.Size.Label, page.Size.Value},
		{"Standard Size", page.Nearest},
		{page.VelocityPressure.Label, page.VelocityPressure.Value},
	})

	section(pdf, "Velocity Options")
	pdf.SetFont("Helvetica", "B", 10)
	for _, c := range page.Columns {
		pdf.CellFormat(40, 7, tr(c), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range page.Rows {
		pdf.CellFormat(40, 6, r.Velocity, "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, r.Area, "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, r.Diameter, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	section(pdf, "Sizing Chart")
	drawChart(pdf, res.Curve, 15, pdf.GetY()+2, 180, 80)

	if input.Notes != "" {
		pdf.SetY(pdf.GetY() + 90)
		section(pdf, "Notes")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(input.Notes), "", "L", false)
	}

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func keyValues(pdf *gofpdf.Fpdf, tr func(string) string, rows [][2]string) {
	pdf.SetFont("Helvetica", "", 11)
	for _, kv := range rows {
		pdf.CellFormat(70, 6, tr(kv[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(kv[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

// drawChart plots the curve as a polyline in the box x, y, w, h (mm).
func drawChart(pdf *gofpdf.Fpdf, curve []duct.CurvePoint, x, y, w, h float64) {
	c := view.NewChart(curve)
	sx := w / float64(c.Width)
	sy := h / float64(c.Height)
	px := func(v float64) float64 { return x + v*sx }
	py := func(v float64) float64 { return y + v*sy }

	pdf.SetDrawColor(136, 136, 136)
	pdf.SetLineWidth(0.2)
	pdf.Line(px(c.Left), py(c.Bottom), px(c.Right), py(c.Bottom))
	pdf.Line(px(c.Left), py(c.Top), px(c.Left), py(c.Bottom))

	pdf.SetFont("Helvetica", "", 7)
	for _, t := range c.XTicks {
		pdf.Text(px(t.Pos)-3, py(c.Bottom)+4, t.Label)
	}
	for _, t := range c.YTicks {
		pdf.Text(px(c.Left)-9, py(t.Pos)+1, t.Label)
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(px(c.Left), py(c.Top)-3, c.Title)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(px(c.Right)-8, py(c.Bottom)+9, c.XTitle)
	pdf.TransformBegin()
	pdf.TransformRotate(90, x+3, py(c.Bottom))
	pdf.Text(x+3, py(c.Bottom), c.YTitle)
	pdf.TransformEnd()

	pdf.SetDrawColor(31, 119, 180)
	pdf.SetLineWidth(0.5)
	for i := 1; i < len(c.Coords); i++ {
		a, b := c.Coords[i-1], c.Coords[i]
		pdf.Line(px(a.X), py(a.Y), px(b.X), py(b.Y))
	}
}
