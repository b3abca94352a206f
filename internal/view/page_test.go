package view

import (
	"net/url"
	"strings"
	"testing"

	"DuctSizer/internal/calc/duct"
)

func mustCalc(t *testing.T, in duct.Input) duct.Result {
	t.Helper()
	res, err := duct.Calculate(in)
	if err != nil {
		t.Fatalf("Calculate(%+v): %v", in, err)
	}
	return res
}

func TestBuild_Round(t *testing.T) {
	p := Build(mustCalc(t, duct.DefaultInput()))

	checks := []struct {
		name, got, want string
	}{
		{"area", p.Area.Value, "1.33 ft²"},
		{"size label", p.Size.Label, "Round Diameter"},
		{"size", p.Size.Value, "15.6 inches"},
		{"nearest", p.Nearest, `Nearest standard: 16" (0.4" diff)`},
		{"vp", p.VelocityPressure.Value, "202.247 in.wg"},
		{"friction", p.Friction, "Friction Rate: 0.08 in.wg/100ft"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
	if p.Rectangular {
		t.Error("Rectangular = true for round duct")
	}
}

func TestBuild_Rectangular(t *testing.T) {
	p := Build(mustCalc(t, duct.Input{CFM: 2000, VelocityFPM: 1000, Shape: duct.Rectangular, AspectRatio: 2, FrictionRate: 0.1}))

	if !p.Rectangular {
		t.Error("Rectangular = false")
	}
	if p.Size.Value != `24.0" x 12.0" (W x H)` {
		t.Errorf("size = %q", p.Size.Value)
	}
	if p.Nearest != `Nearest standard: 24" x 12"` {
		t.Errorf("nearest = %q", p.Nearest)
	}
	if p.Area.Value != "2.00 ft²" {
		t.Errorf("area = %q", p.Area.Value)
	}
}

func TestBuild_Table(t *testing.T) {
	p := Build(mustCalc(t, duct.DefaultInput()))

	want := []Row{
		{"600", "2.00", "19.1"},
		{"800", "1.50", "16.6"},
		{"1000", "1.20", "14.8"},
		{"1200", "1.00", "13.5"},
		{"1500", "0.80", "12.1"},
	}
	if len(p.Rows) != len(want) {
		t.Fatalf("len(Rows) = %d, want %d", len(p.Rows), len(want))
	}
	for i := range want {
		if p.Rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, p.Rows[i], want[i])
		}
	}
	if strings.Join(p.Columns, "|") != "Velocity (FPM)|Area (ft²)|Dia (in)" {
		t.Errorf("columns = %v", p.Columns)
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  duct.Input
	}{
		{"defaults", "", duct.DefaultInput()},
		{
			"values",
			"cfm=2000&velocity=1000&shape=Rectangular&aspect=3.5&friction=0.12",
			duct.Input{CFM: 2000, VelocityFPM: 1000, Shape: duct.Rectangular, AspectRatio: 3.5, FrictionRate: 0.12},
		},
		{
			"clamped",
			"cfm=1&velocity=99999&aspect=0&friction=2",
			duct.Input{CFM: 50, VelocityFPM: 2500, Shape: duct.Round, AspectRatio: 1, FrictionRate: 0.5},
		},
		{
			"garbage",
			"cfm=abc&velocity=NaN&shape=hexagon",
			duct.DefaultInput(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			if got := ParseQuery(q); got != tt.want {
				t.Errorf("ParseQuery(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestText(t *testing.T) {
	out := Text(Build(mustCalc(t, duct.DefaultInput())))
	for _, want := range []string{
		"Cross-Sectional Area: 1.33 ft²",
		"Round Diameter: 15.6 inches",
		`Nearest standard: 16"`,
		"Velocity Pressure: 202.247 in.wg",
		"600 | 2.00 | 19.1",
		"1500 | 0.80 | 12.1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Text() missing %q in:\n%s", want, out)
		}
	}
}
