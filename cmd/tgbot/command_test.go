package main

import (
	"strings"
	"testing"

	"DuctSizer/internal/calc/duct"
)

func TestParseDuct(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		want    duct.Input
		wantErr bool
	}{
		{"round", "1200 900", duct.Input{CFM: 1200, VelocityFPM: 900, Shape: duct.Round, AspectRatio: 2, FrictionRate: 0.08}, false},
		{"rect", "2000 1000 rect 3", duct.Input{CFM: 2000, VelocityFPM: 1000, Shape: duct.Rectangular, AspectRatio: 3, FrictionRate: 0.08}, false},
		{"rect default aspect", "2000 1000 rectangular", duct.Input{CFM: 2000, VelocityFPM: 1000, Shape: duct.Rectangular, AspectRatio: 2, FrictionRate: 0.08}, false},
		{"friction", "1500 800 round 0.1", duct.Input{CFM: 1500, VelocityFPM: 800, Shape: duct.Round, AspectRatio: 2, FrictionRate: 0.1}, false},
		{"friction without shape", "1500 800 0.12", duct.Input{CFM: 1500, VelocityFPM: 800, Shape: duct.Round, AspectRatio: 2, FrictionRate: 0.12}, false},
		{"missing velocity", "1200", duct.Input{}, true},
		{"bad cfm", "lots 900", duct.Input{}, true},
		{"bad aspect", "1200 900 rect wide", duct.Input{}, true},
		{"trailing", "1200 900 round 0.1 extra", duct.Input{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDuct(strings.Fields(tt.args))
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseDuct(%q) expected error", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDuct(%q) error: %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("parseDuct(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestReply(t *testing.T) {
	tests := []struct {
		text     string
		ok       bool
		contains string
	}{
		{"hello", false, ""},
		{"", false, ""},
		{"/start", true, "/duct <cfm>"},
		{"/help@DuctBot", true, "/duct <cfm>"},
		{"/duct 1200 900", true, "Nearest standard: 16\""},
		{"/duct 2000 1000 rect 2", true, "(W x H)"},
		{"/duct 1200 0", true, "velocity"},
		{"/duct -100 900", true, "invalid input: airflow"},
		{"/duct 1200 NaN", true, "invalid input: velocity"},
		{"/duct 1200 900 rect Inf", true, "invalid input: aspect ratio"},
		{"/duct", true, "need airflow and velocity"},
		{"/weld", true, "Unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := reply(tt.text)
			if ok != tt.ok {
				t.Fatalf("reply(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("reply(%q) = %q, want it to contain %q", tt.text, got, tt.contains)
			}
		})
	}
}
