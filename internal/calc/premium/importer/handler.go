package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"DuctSizer/internal/calc/duct"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const maxUploadSize = 5 << 20 // 5MB

type Handler struct{}

type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type DuctImportResult struct {
	Count   int           `json:"count"`
	Skipped []SkippedRow  `json:"skipped,omitempty"`
	Results []duct.Result `json:"results"`
}

func (h *Handler) Duct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := ImportDuct(file)
	if err != nil {
		log.WithError(err).Info("rejected import")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.WithError(err).Warn("encode import response")
	}
}

// ImportDuct sizes every data row of the first sheet of an xlsx workbook.
// Rows that cannot be parsed or sized are skipped and reported by their
// 1-based sheet row number.
func ImportDuct(r io.Reader) (DuctImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return DuctImportResult{}, fmt.Errorf("invalid file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return DuctImportResult{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return DuctImportResult{}, fmt.Errorf("empty sheet")
	}

	out := DuctImportResult{Results: []duct.Result{}}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		input, err := parseDuctRow(row)
		if err != nil {
			out.Skipped = append(out.Skipped, SkippedRow{Row: i + 1, Reason: err.Error()})
			continue
		}
		res, err := duct.Calculate(input)
		if err != nil {
			out.Skipped = append(out.Skipped, SkippedRow{Row: i + 1, Reason: err.Error()})
			continue
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)
	return out, nil
}

func parseDuctRow(row []string) (duct.Input, error) {
	// expected: cfm, velocity_fpm, shape(optional), aspect(optional), friction(optional)
	if len(row) < 2 {
		return duct.Input{}, fmt.Errorf("bad row: need cfm and velocity")
	}
	in := duct.DefaultInput()
	var err error
	if in.CFM, err = toFloat(row[0]); err != nil {
		return duct.Input{}, fmt.Errorf("bad cfm %q", row[0])
	}
	if in.VelocityFPM, err = toFloat(row[1]); err != nil {
		return duct.Input{}, fmt.Errorf("bad velocity %q", row[1])
	}
	if len(row) > 2 {
		if in.Shape, err = duct.ParseShape(strings.TrimSpace(row[2])); err != nil {
			return duct.Input{}, err
		}
	}
	if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
		if in.AspectRatio, err = toFloat(row[3]); err != nil {
			return duct.Input{}, fmt.Errorf("bad aspect ratio %q", row[3])
		}
	}
	if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
		if in.FrictionRate, err = toFloat(row[4]); err != nil {
			return duct.Input{}, fmt.Errorf("bad friction rate %q", row[4])
		}
	}
	return in, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
