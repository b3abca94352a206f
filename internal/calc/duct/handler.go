package duct

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
)

const maxCurvePoints = 1000

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	input := DefaultInput()
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		writeCalcError(w, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) Curve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cfm, err := floatParam(q.Get("cfm"), Ranges.CFM.Default)
	if err != nil {
		http.Error(w, "Invalid cfm", http.StatusBadRequest)
		return
	}
	velocity, err := floatParam(q.Get("velocity"), Ranges.Velocity.Default)
	if err != nil {
		http.Error(w, "Invalid velocity", http.StatusBadRequest)
		return
	}
	n := CurvePoints
	if s := q.Get("points"); s != "" {
		n, err = strconv.Atoi(s)
		if err != nil || n < 1 || n > maxCurvePoints {
			http.Error(w, "Invalid points", http.StatusBadRequest)
			return
		}
	}
	points, err := SizingCurve(cfm, velocity, n)
	if err != nil {
		writeCalcError(w, err)
		return
	}
	writeJSON(w, points)
}

func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	cfm, err := floatParam(r.URL.Query().Get("cfm"), Ranges.CFM.Default)
	if err != nil {
		http.Error(w, "Invalid cfm", http.StatusBadRequest)
		return
	}
	rows, err := VelocityTable(cfm, ReferenceVelocities)
	if err != nil {
		writeCalcError(w, err)
		return
	}
	writeJSON(w, rows)
}

func (h *Handler) Standards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"round":       StandardRound,
		"rectangular": StandardRect,
		"ranges":      Ranges,
	})
}

func writeCalcError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.WithError(err).Error("duct calculation failed")
	http.Error(w, "Calculation error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("encode response")
	}
}

func floatParam(s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}
