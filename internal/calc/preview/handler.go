package preview

import (
	"encoding/json"
	"log"
	"net/http"

	"Ironforge/internal/catalog"

	"gonum.org/v1/plot/vg"
)

type Handler struct {
	Catalog *catalog.Catalog
}

func (h *Handler) Draw(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = PNG
	}
	if format != PNG && format != SVG {
		http.Error(w, "format must be png or svg", http.StatusBadRequest)
		return
	}
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	p, wMm, hMm, err := Design(req, h.Catalog)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	width, height := Size(wMm, hMm, 8*vg.Inch)
	if format == SVG {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else {
		w.Header().Set("Content-Type", "image/png")
	}
	if err := Render(w, p, format, width, height); err != nil {
		log.Printf("preview: %v", err)
		http.Error(w, "Preview generation error", http.StatusInternalServerError)
	}
}
