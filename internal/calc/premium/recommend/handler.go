package recommend

import (
	"encoding/json"
	"errors"
	"net/http"

	calc "Ironforge/internal/calc"
	"Ironforge/internal/catalog"
)

type Handler struct {
	Catalog *catalog.Catalog
}

func (h *Handler) Frame(w http.ResponseWriter, r *http.Request) {
	var input FrameInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Frame(input, h.Catalog)
	if err != nil {
		var cfgErr *calc.ConfigError
		if errors.As(err, &cfgErr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
