package importer

import (
	"encoding/json"
	"net/http"

	analysis "Meyerhof/internal/calc/analysis"
	log "Meyerhof/internal/log"
)

type Handler struct {
	DefaultMethod string
	Workers       int
	// MaxBytes bounds the upload; 0 means 10 MB.
	MaxBytes int64
}

// Upload runs the project in the multipart "file" workbook.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	limit := h.MaxBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	in, err := Load(file)
	if err != nil {
		log.Debugf("workbook upload rejected: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := analysis.Execute(in, h.DefaultMethod, analysis.Options{Workers: h.Workers})
	if err != nil {
		http.Error(w, err.Error(), analysis.Status(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
