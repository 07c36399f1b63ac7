package autodesign

import (
	"encoding/json"
	"errors"
	"net/http"

	analysis "Meyerhof/internal/calc/analysis"
)

type Handler struct{}

func (h *Handler) Footing(w http.ResponseWriter, r *http.Request) {
	var input FootingAutoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Footing(input)
	if err != nil {
		status := analysis.Status(err)
		if errors.Is(err, ErrNoFootingFits) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
