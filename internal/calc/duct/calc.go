package duct

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInput is returned for inputs the formulas cannot be evaluated on.
var ErrInvalidInput = errors.New("invalid input")

const (
	inchesPerFoot = 12.0
	curveStartCFM = 200.0

	// VP = V^2 / 4005, kept as the calculator has always shown it.
	vpDivisor = 4005.0

	// CurvePoints is the sample count of the chart curve.
	CurvePoints = 100
)

type Shape string

const (
	Round       Shape = "Round"
	Rectangular Shape = "Rectangular"
)

// ReferenceVelocities are the rows of the velocity options table, FPM.
var ReferenceVelocities = []float64{600, 800, 1000, 1200, 1500}

type Input struct {
	CFM          float64 `json:"cfm"`
	VelocityFPM  float64 `json:"velocity_fpm"`
	Shape        Shape   `json:"shape"`
	AspectRatio  float64 `json:"aspect_ratio"`
	FrictionRate float64 `json:"friction_rate"`
}

type RoundSize struct {
	DiameterIn float64 `json:"diameter_in"`
	StandardIn float64 `json:"standard_in"`
	DiffIn     float64 `json:"diff_in"`
}

type RectSize struct {
	WidthIn          float64 `json:"width_in"`
	HeightIn         float64 `json:"height_in"`
	StandardWidthIn  float64 `json:"standard_width_in"`
	StandardHeightIn float64 `json:"standard_height_in"`
}

type CurvePoint struct {
	CFM        float64 `json:"cfm"`
	DiameterIn float64 `json:"diameter_in"`
}

type TableRow struct {
	VelocityFPM float64 `json:"velocity_fpm"`
	AreaSqFt    float64 `json:"area_sqft"`
	DiameterIn  float64 `json:"diameter_in"`
}

type Result struct {
	Input            Input        `json:"input"`
	AreaSqFt         float64      `json:"area_sqft"`
	Round            *RoundSize   `json:"round,omitempty"`
	Rect             *RectSize    `json:"rect,omitempty"`
	VelocityPressure float64      `json:"velocity_pressure_inwg"`
	FrictionRate     float64      `json:"friction_rate"`
	Curve            []CurvePoint `json:"curve"`
	Table            []TableRow   `json:"table"`
}

// DefaultInput returns the values the calculator opens with.
func DefaultInput() Input {
	return Input{
		CFM:          Ranges.CFM.Default,
		VelocityFPM:  Ranges.Velocity.Default,
		Shape:        Round,
		AspectRatio:  Ranges.Aspect.Default,
		FrictionRate: Ranges.Friction.Default,
	}
}

// ParseShape accepts the selector labels case-insensitively, plus "rect".
func ParseShape(s string) (Shape, error) {
	switch {
	case s == "" || strings.EqualFold(s, string(Round)):
		return Round, nil
	case strings.EqualFold(s, string(Rectangular)) || strings.EqualFold(s, "rect"):
		return Rectangular, nil
	}
	return "", fmt.Errorf("%w: unknown duct shape %q", ErrInvalidInput, s)
}

func (s *Shape) UnmarshalText(b []byte) error {
	v, err := ParseShape(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Area returns the cross-sectional area in ft².
func Area(cfm, velocity float64) (float64, error) {
	if err := checkFlow(cfm, velocity); err != nil {
		return 0, err
	}
	a := cfm / velocity
	if math.IsInf(a, 0) {
		return 0, fmt.Errorf("%w: area out of range for %g CFM at %g FPM", ErrInvalidInput, cfm, velocity)
	}
	return a, nil
}

func checkFlow(cfm, velocity float64) error {
	if err := finite("airflow", cfm); err != nil {
		return err
	}
	if cfm < 0 {
		return fmt.Errorf("%w: airflow must not be negative, got %g", ErrInvalidInput, cfm)
	}
	if err := finite("velocity", velocity); err != nil {
		return err
	}
	if velocity <= 0 {
		return fmt.Errorf("%w: velocity must be positive, got %g", ErrInvalidInput, velocity)
	}
	return nil
}

func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %g", ErrInvalidInput, name, v)
	}
	return nil
}

// RoundDiameter returns the diameter in inches of a circle with the given area in ft².
func RoundDiameter(area float64) float64 {
	return 2 * math.Sqrt(area/math.Pi) * inchesPerFoot
}

// RectDims splits area (ft²) into width and height in inches so that width/height == aspect.
func RectDims(area, aspect float64) (width, height float64, err error) {
	if err := finite("aspect ratio", aspect); err != nil {
		return 0, 0, err
	}
	if aspect <= 0 {
		return 0, 0, fmt.Errorf("%w: aspect ratio must be positive, got %g", ErrInvalidInput, aspect)
	}
	h := math.Sqrt(area / aspect)
	width, height = aspect*h*inchesPerFoot, h*inchesPerFoot
	if math.IsNaN(width) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return 0, 0, fmt.Errorf("%w: aspect ratio %g out of range for area %g", ErrInvalidInput, aspect, area)
	}
	return width, height, nil
}

// NearestStandard returns the candidate closest to value. Ties go to the
// earlier candidate. An empty list returns value unchanged.
func NearestStandard(value float64, candidates []float64) float64 {
	if len(candidates) == 0 {
		return value
	}
	best := candidates[0]
	bestDiff := math.Abs(best - value)
	for _, c := range candidates[1:] {
		if d := math.Abs(c - value); d < bestDiff {
			best, bestDiff = c, d
		}
	}
	return best
}

// VelocityPressure returns velocity²/4005 for a velocity in FPM.
func VelocityPressure(velocity float64) float64 {
	return velocity * velocity / vpDivisor
}

// SizingCurve samples n CFM values evenly from 200 to 2*cfm, endpoints
// included, and returns the round diameter of each at the given velocity.
func SizingCurve(cfm, velocity float64, n int) ([]CurvePoint, error) {
	if err := checkFlow(cfm, velocity); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}
	end := 2 * cfm
	if math.IsInf(end, 0) || math.IsInf(math.Max(end, curveStartCFM)/velocity, 0) {
		return nil, fmt.Errorf("%w: airflow out of range, got %g", ErrInvalidInput, cfm)
	}
	step := 0.0
	if n > 1 {
		step = (end - curveStartCFM) / float64(n-1)
	}
	points := make([]CurvePoint, n)
	for i := range points {
		q := curveStartCFM + float64(i)*step
		if i == n-1 && n > 1 {
			q = end
		}
		points[i] = CurvePoint{CFM: q, DiameterIn: RoundDiameter(q / velocity)}
	}
	return points, nil
}

// VelocityTable sizes a round duct for cfm at each of the given velocities.
func VelocityTable(cfm float64, velocities []float64) ([]TableRow, error) {
	if err := finite("airflow", cfm); err != nil {
		return nil, err
	}
	if cfm < 0 {
		return nil, fmt.Errorf("%w: airflow must not be negative, got %g", ErrInvalidInput, cfm)
	}
	rows := make([]TableRow, 0, len(velocities))
	for _, v := range velocities {
		a, err := Area(cfm, v)
		if err != nil {
			return nil, err
		}
		rows = append(rows, TableRow{VelocityFPM: v, AreaSqFt: a, DiameterIn: RoundDiameter(a)})
	}
	return rows, nil
}

// Calculate evaluates every displayed quantity for one set of inputs.
func Calculate(in Input) (Result, error) {
	// all of Input is echoed back, including fields the shape ignores
	if err := finite("aspect ratio", in.AspectRatio); err != nil {
		return Result{}, err
	}
	if err := finite("friction rate", in.FrictionRate); err != nil {
		return Result{}, err
	}
	area, err := Area(in.CFM, in.VelocityFPM)
	if err != nil {
		return Result{}, err
	}
	if vp := VelocityPressure(in.VelocityFPM); math.IsInf(vp, 0) {
		return Result{}, fmt.Errorf("%w: velocity out of range, got %g", ErrInvalidInput, in.VelocityFPM)
	}
	res := Result{
		Input:            in,
		AreaSqFt:         area,
		VelocityPressure: VelocityPressure(in.VelocityFPM),
		FrictionRate:     in.FrictionRate,
	}

	switch in.Shape {
	case Round, "":
		res.Input.Shape = Round
		d := RoundDiameter(area)
		std := NearestStandard(d, StandardRound)
		res.Round = &RoundSize{DiameterIn: d, StandardIn: std, DiffIn: math.Abs(std - d)}
	case Rectangular:
		w, h, err := RectDims(area, in.AspectRatio)
		if err != nil {
			return Result{}, err
		}
		res.Rect = &RectSize{
			WidthIn:          w,
			HeightIn:         h,
			StandardWidthIn:  NearestStandard(w, StandardRect),
			StandardHeightIn: NearestStandard(h, StandardRect),
		}
	default:
		return Result{}, fmt.Errorf("%w: unknown duct shape %q", ErrInvalidInput, in.Shape)
	}

	if res.Curve, err = SizingCurve(in.CFM, in.VelocityFPM, CurvePoints); err != nil {
		return Result{}, err
	}
	if res.Table, err = VelocityTable(in.CFM, ReferenceVelocities); err != nil {
		return Result{}, err
	}
	return res, nil
}
