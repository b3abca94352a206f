// Package view turns a sizing result into what the calculator shows: labeled
// metrics at display precision, the nearest-standard banner, the sizing chart
// and the velocity options table.
//
// A Page is rebuilt from scratch for every input change. The same Page backs
// the HTML view, the live WebSocket updates and the text replies of the bot.
package view

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"DuctSizer/internal/calc/duct"
)

const (
	Title       = "HVAC Duct Sizer"
	Description = "Practical tool for MEP engineers to size HVAC ducts based on CFM and velocity. Uses standard formulas."
	RepoURL     = "https://github.com/janglimTARS/tars-hvac-duct-sizer-2026-02-02"
	Footer      = "Built by TARS Nightly Inventor - 2026-02-02"

	ChartTitle  = "CFM vs Round Duct Diameter"
	ChartXTitle = "CFM"
	ChartYTitle = "Diameter (inches)"
	SeriesName  = "Round Dia (in)"
)

// Table column headers of the velocity options table.
var TableColumns = []string{"Velocity (FPM)", "Area (ft²)", "Dia (in)"}

type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Row struct {
	Velocity string `json:"velocity"`
	Area     string `json:"area"`
	Diameter string `json:"diameter"`
}

type Page struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	RepoURL     string           `json:"repo_url"`
	Footer      string           `json:"footer"`
	Input       duct.Input       `json:"input"`
	Ranges      duct.InputRanges `json:"ranges"`
	Rectangular bool             `json:"rectangular"`

	Area             Metric `json:"area"`
	Size             Metric `json:"size"`
	Nearest          string `json:"nearest"`
	VelocityPressure Metric `json:"velocity_pressure"`
	Friction         string `json:"friction"`

	Chart   Chart    `json:"chart"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Build formats res for display.
func Build(res duct.Result) Page {
	p := Page{
		Title:       Title,
		Description: Description,
		RepoURL:     RepoURL,
		Footer:      Footer,
		Input:       res.Input,
		Ranges:      duct.Ranges,
		Rectangular: res.Rect != nil,
		Area:        Metric{Label: "Cross-Sectional Area", Value: fmt.Sprintf("%.2f ft²", res.AreaSqFt)},
		VelocityPressure: Metric{
			Label: "Velocity Pressure",
			Value: fmt.Sprintf("%.3f in.wg", res.VelocityPressure),
		},
		Friction: fmt.Sprintf("Friction Rate: %.2f in.wg/100ft", res.FrictionRate),
		Chart:    NewChart(res.Curve),
		Columns:  TableColumns,
	}

	switch {
	case res.Round != nil:
		p.Size = Metric{Label: "Round Diameter", Value: fmt.Sprintf("%.1f inches", res.Round.DiameterIn)}
		p.Nearest = fmt.Sprintf("Nearest standard: %s\" (%.1f\" diff)", inches(res.Round.StandardIn), res.Round.DiffIn)
	case res.Rect != nil:
		p.Size = Metric{
			Label: "Rectangular Size",
			Value: fmt.Sprintf("%.1f\" x %.1f\" (W x H)", res.Rect.WidthIn, res.Rect.HeightIn),
		}
		p.Nearest = fmt.Sprintf("Nearest standard: %s\" x %s\"", inches(res.Rect.StandardWidthIn), inches(res.Rect.StandardHeightIn))
	}

	p.Rows = make([]Row, 0, len(res.Table))
	for _, r := range res.Table {
		p.Rows = append(p.Rows, Row{
			Velocity: strconv.FormatFloat(r.VelocityFPM, 'f', -1, 64),
			Area:     fmt.Sprintf("%.2f", r.AreaSqFt),
			Diameter: fmt.Sprintf("%.1f", r.DiameterIn),
		})
	}
	return p
}

// ParseQuery reads calculator inputs from a query string. Missing or
// malformed values take the defaults and numbers are clamped to the slider
// bounds.
func ParseQuery(q url.Values) duct.Input {
	in := duct.DefaultInput()
	in.CFM = clamped(q.Get("cfm"), duct.Ranges.CFM)
	in.VelocityFPM = clamped(q.Get("velocity"), duct.Ranges.Velocity)
	in.AspectRatio = clamped(q.Get("aspect"), duct.Ranges.Aspect)
	in.FrictionRate = clamped(q.Get("friction"), duct.Ranges.Friction)
	if shape, err := duct.ParseShape(q.Get("shape")); err == nil {
		in.Shape = shape
	}
	return in
}

// Text renders the page as plain lines, for chat replies.
func Text(p Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", p.Area.Label, p.Area.Value)
	fmt.Fprintf(&b, "%s: %s\n", p.Size.Label, p.Size.Value)
	fmt.Fprintf(&b, "%s\n", p.Nearest)
	fmt.Fprintf(&b, "%s: %s\n", p.VelocityPressure.Label, p.VelocityPressure.Value)
	fmt.Fprintf(&b, "%s\n", p.Friction)
	b.WriteString("\nVelocity Options\n")
	b.WriteString(strings.Join(p.Columns, " | "))
	b.WriteByte('\n')
	for _, r := range p.Rows {
		fmt.Fprintf(&b, "%s | %s | %s\n", r.Velocity, r.Area, r.Diameter)
	}
	return b.String()
}

func clamped(s string, r duct.Range) float64 {
	if s == "" {
		return r.Default
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return r.Default
	}
	return r.Clamp(v)
}

func inches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
