package report

import (
	"bytes"
	"log"
	"net/http"

	"Ironforge/internal/auth"
	"Ironforge/internal/catalog"
	"Ironforge/internal/quote"
)

type Handler struct {
	Store   *quote.Store
	Catalog *catalog.Catalog
}

// Generate renders the caller's current quotation.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	q := h.Store.Get(id)

	var buf bytes.Buffer
	if err := Quote(&buf, q, h.Catalog); err != nil {
		log.Printf("quote pdf: %v", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+q.Number+".pdf\"")
	w.Write(buf.Bytes())
}
