package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"DuctSizer/internal/calc/duct"
)

func fixedNow() time.Time {
	return time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)
}

func TestWrite(t *testing.T) {
	h := &Handler{Now: fixedNow}
	inputs := []Input{
		{Project: "Clinic AHU-2", Author: "J. Doe", Duct: duct.DefaultInput()},
		{
			Title: "Supply trunk",
			Notes: "Main trunk above corridor ceiling.\nCheck clearance at grid C.",
			Duct:  duct.Input{CFM: 2000, VelocityFPM: 1000, Shape: duct.Rectangular, AspectRatio: 2, FrictionRate: 0.1},
		},
	}
	for _, in := range inputs {
		var buf bytes.Buffer
		if err := h.Write(&buf, in); err != nil {
			t.Fatalf("Write(%+v) error: %v", in, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
			t.Errorf("output does not start with a PDF header")
		}
		if buf.Len() < 1000 {
			t.Errorf("PDF is suspiciously small: %d bytes", buf.Len())
		}
	}
}

func TestWrite_InvalidInput(t *testing.T) {
	h := &Handler{}
	var buf bytes.Buffer
	if err := h.Write(&buf, Input{Duct: duct.Input{CFM: 1200, VelocityFPM: 0}}); err == nil {
		t.Error("expected error for zero velocity")
	}
}

func TestGenerate(t *testing.T) {
	h := &Handler{Now: fixedNow}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"defaults", `{"project":"P-1"}`, http.StatusOK},
		{"rectangular", `{"duct":{"cfm":5000,"velocity_fpm":1200,"shape":"Rectangular","aspect_ratio":3}}`, http.StatusOK},
		{"bad json", `{"project":`, http.StatusBadRequest},
		{"bad aspect", `{"duct":{"shape":"Rectangular","aspect_ratio":0}}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/tools/report/pdf", strings.NewReader(tt.body)))
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want != http.StatusOK {
				return
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
				t.Errorf("Content-Type = %q", ct)
			}
			if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
				t.Error("body is not a PDF")
			}
		})
	}
}
