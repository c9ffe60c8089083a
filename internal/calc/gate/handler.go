package gate

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	calc "Ironforge/internal/calc"
	"Ironforge/internal/catalog"
)

type Handler struct {
	Catalog *catalog.Catalog
}

type CalcResponse struct {
	Result    calc.Result `json:"result"`
	Breakdown Breakdown   `json:"breakdown"`
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Config
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, g, err := Weigh(input, h.Catalog)
	if err != nil {
		var cfgErr *calc.ConfigError
		if errors.As(err, &cfgErr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}
	res := result(b, g)
	for _, warn := range res.Warnings {
		log.Printf("gate calc: %s", warn)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CalcResponse{Result: res, Breakdown: b})
}
