package duct

// Standard duct sizes in inches, ascending.
var (
	StandardRound = []float64{4, 5, 6, 7, 8, 9, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32, 34, 36}
	StandardRect  = []float64{6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 30, 36}
)

// Range describes one slider of the calculator.
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// Clamp limits v to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

type InputRanges struct {
	CFM      Range `json:"cfm"`
	Velocity Range `json:"velocity_fpm"`
	Aspect   Range `json:"aspect_ratio"`
	Friction Range `json:"friction_rate"`
}

// Ranges holds the bounds the input widgets enforce. The engine itself does
// not re-validate against them.
var Ranges = InputRanges{
	CFM:      Range{Min: 50, Max: 20000, Step: 50, Default: 1200},
	Velocity: Range{Min: 300, Max: 2500, Step: 50, Default: 900},
	Aspect:   Range{Min: 1.0, Max: 6.0, Step: 0.5, Default: 2.0},
	Friction: Range{Min: 0.05, Max: 0.50, Step: 0.01, Default: 0.08},
}
