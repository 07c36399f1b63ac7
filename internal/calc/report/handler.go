package report

import (
	"bytes"
	"encoding/json"
	"net/http"

	analysis "Meyerhof/internal/calc/analysis"
	log "Meyerhof/internal/log"
)

type Handler struct {
	DefaultMethod string
	Workers       int
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) (analysis.Report, bool) {
	var input analysis.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return analysis.Report{}, false
	}
	res, err := analysis.Execute(input, h.DefaultMethod, analysis.Options{Workers: h.Workers})
	if err != nil {
		http.Error(w, err.Error(), analysis.Status(err))
		return analysis.Report{}, false
	}
	return res, true
}

// PDF runs the posted project and answers with the PDF report.
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	res, ok := h.run(w, r)
	if !ok {
		return
	}
	charts, err := Charts(res)
	if err != nil {
		log.Errorf("run %s: charts: %v", res.RunID, err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := PDF(&buf, res, charts); err != nil {
		log.Errorf("run %s: pdf: %v", res.RunID, err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"Report_Bearing_Capacity.pdf\"")
	w.Write(buf.Bytes())
}

// XLSX runs the posted project and answers with the results workbook.
func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	res, ok := h.run(w, r)
	if !ok {
		return
	}
	f, err := Workbook(res)
	if err != nil {
		log.Errorf("run %s: workbook: %v", res.RunID, err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Errorf("run %s: workbook: %v", res.RunID, err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"Results_Bearing_Capacity.xlsx\"")
	w.Write(buf.Bytes())
}
