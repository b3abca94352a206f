package view

import (
	"math"
	"strconv"
	"strings"

	"DuctSizer/internal/calc/duct"
)

// Plot geometry of the SVG chart, in viewBox units.
const (
	ChartWidth  = 640
	ChartHeight = 360

	marginLeft   = 64
	marginRight  = 20
	marginTop    = 40
	marginBottom = 56

	tickCount = 5
)

type Point struct {
	X, Y float64
}

type Tick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Chart is a single line series scaled into the SVG viewBox.
type Chart struct {
	Title  string  `json:"title"`
	XTitle string  `json:"x_title"`
	YTitle string  `json:"y_title"`
	Series string  `json:"series"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Points string  `json:"points"`
	Coords []Point `json:"-"`
	XTicks []Tick  `json:"x_ticks"`
	YTicks []Tick  `json:"y_ticks"`
}

// NewChart scales the curve into the plot box. The y axis starts at zero.
func NewChart(curve []duct.CurvePoint) Chart {
	c := Chart{
		Title:  ChartTitle,
		XTitle: ChartXTitle,
		YTitle: ChartYTitle,
		Series: SeriesName,
		Width:  ChartWidth,
		Height: ChartHeight,
		Left:   marginLeft,
		Right:  ChartWidth - marginRight,
		Top:    marginTop,
		Bottom: ChartHeight - marginBottom,
	}
	if len(curve) == 0 {
		return c
	}

	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMax := 0.0
	for _, p := range curve {
		xMin = math.Min(xMin, p.CFM)
		xMax = math.Max(xMax, p.CFM)
		yMax = math.Max(yMax, p.DiameterIn)
	}
	if xMax == xMin {
		xMax = xMin + 1
	}
	if yMax == 0 {
		yMax = 1
	}
	yMax = niceCeil(yMax)

	sx := func(v float64) float64 { return c.Left + (v-xMin)/(xMax-xMin)*(c.Right-c.Left) }
	sy := func(v float64) float64 { return c.Bottom - v/yMax*(c.Bottom-c.Top) }

	var b strings.Builder
	c.Coords = make([]Point, len(curve))
	for i, p := range curve {
		c.Coords[i] = Point{X: sx(p.CFM), Y: sy(p.DiameterIn)}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(coord(c.Coords[i].X))
		b.WriteByte(',')
		b.WriteString(coord(c.Coords[i].Y))
	}
	c.Points = b.String()

	for i := 0; i < tickCount; i++ {
		f := float64(i) / float64(tickCount-1)
		xv := xMin + f*(xMax-xMin)
		yv := f * yMax
		c.XTicks = append(c.XTicks, Tick{Pos: sx(xv), Label: strconv.FormatFloat(math.Round(xv), 'f', 0, 64)})
		c.YTicks = append(c.YTicks, Tick{Pos: sy(yv), Label: strconv.FormatFloat(yv, 'f', 1, 64)})
	}
	return c
}

// niceCeil rounds v up to the next multiple of 1, 2 or 5 times a power of ten.
func niceCeil(v float64) float64 {
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*exp >= v {
			return m * exp
		}
	}
	return 10 * exp
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
