package exporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"DuctSizer/internal/calc/duct"
	log "github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct{}

func (h *Handler) Xlsx(w http.ResponseWriter, r *http.Request) {
	input := duct.DefaultInput()
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := duct.Calculate(input)
	if err != nil {
		if errors.Is(err, duct.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, res); err != nil {
		log.WithError(err).Error("write workbook")
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\"duct-sizing.xlsx\"")
	buf.WriteTo(w)
}
