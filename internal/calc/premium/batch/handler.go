package batch

import (
	"encoding/json"
	"net/http"

	"DuctSizer/internal/calc/duct"
	log "github.com/sirupsen/logrus"
)

type Handler struct{}

func (h *Handler) Duct(w http.ResponseWriter, r *http.Request) {
	var raw struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	// each item starts from the calculator defaults
	input := DuctBatchInput{Items: make([]duct.Input, len(raw.Items))}
	for i, item := range raw.Items {
		input.Items[i] = duct.DefaultInput()
		if err := json.Unmarshal(item, &input.Items[i]); err != nil {
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}
	}
	res, err := CalculateDuct(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.WithError(err).Warn("encode batch response")
	}
}
