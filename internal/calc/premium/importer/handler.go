package importer

import (
	"encoding/json"
	"net/http"

	"Ironforge/internal/calc/premium/batch"
	"Ironforge/internal/catalog"
)

type Handler struct {
	Catalog *catalog.Catalog
}

type GateImportResult struct {
	Count   int          `json:"count"`
	Batch   batch.Output `json:"batch"`
	Skipped []Skipped    `json:"skipped"`
}

func (h *Handler) Gates(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	sheet, err := Read(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	res := GateImportResult{Skipped: sheet.Skipped}
	if len(sheet.Entries) > 0 {
		if res.Batch, err = batch.Run(batch.Input{Items: sheet.Entries}, h.Catalog); err != nil {
			http.Error(w, "Calculation error", http.StatusInternalServerError)
			return
		}
		res.Count = len(res.Batch.Results) - res.Batch.Failed
	}
	if res.Skipped == nil {
		res.Skipped = []Skipped{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
