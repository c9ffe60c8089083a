package window

import (
	"encoding/json"
	"log"
	"net/http"

	calc "Ironforge/internal/calc"
	"Ironforge/internal/catalog"
)

type Handler struct {
	Catalog *catalog.Catalog
}

type CalcResponse struct {
	Result calc.Result  `json:"result"`
	Grill  *calc.Result `json:"grill,omitempty"`
}

type ResizeRequest struct {
	Config Config `json:"config"`
	Axis   Axis   `json:"axis"`
	Delta  int    `json:"delta"`
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
	res, err := Calculate(input, h.Catalog)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	grill, err := Grill(input, h.Catalog)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, warn := range res.Warnings {
		log.Printf("window calc: %s", warn)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CalcResponse{Result: res, Grill: grill})
}

func (h *Handler) Resize(w http.ResponseWriter, r *http.Request) {
	var input ResizeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	out, err := input.Config.Resize(input.Axis, input.Delta)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
