package autodesign

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/premium/recommend"
	"Ironforge/internal/catalog"
)

// Handler answers design requests. Without a Provider it falls back to the
// frame recommendation for the current size.
type Handler struct {
	Provider Provider
	Catalog  *catalog.Catalog
}

type SuggestRequest struct {
	Prompt string      `json:"prompt"`
	Config gate.Config `json:"config"`
}

type SuggestResponse struct {
	Config gate.Config `json:"config"`
	Source string      `json:"source"`
}

func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	var input SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Config.Unit == "" {
		input.Config = gate.Default()
	}

	var res SuggestResponse
	if h.Provider == nil {
		cfg, err := recommend.Gate(recommend.FrameInput{
			Width:    input.Config.Width,
			Height:   input.Config.Height,
			Unit:     input.Config.Unit,
			GateType: input.Config.GateType,
		}, h.Catalog)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res = SuggestResponse{Config: cfg, Source: "recommend"}
	} else {
		s, err := Suggest(r.Context(), h.Provider, input.Prompt, input.Config, h.Catalog)
		if errors.Is(err, ErrNoSuggestion) {
			http.Error(w, "No valid suggestion", http.StatusUnprocessableEntity)
			return
		}
		if err != nil {
			log.Printf("design suggestion: %v", err)
			http.Error(w, "Suggestion service error", http.StatusBadGateway)
			return
		}
		res = SuggestResponse{Config: Apply(input.Config, s), Source: "model"}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
