package catalog

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	Catalog *Catalog
}

type Listing struct {
	Gate   []Profile       `json:"gate"`
	Window []WindowProfile `json:"window"`
}

// List serves the whole catalog. A ?category= filter narrows the window rows.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	out := Listing{Gate: h.Catalog.GateProfiles(), Window: h.Catalog.WindowProfiles()}
	if c := Category(r.URL.Query().Get("category")); c != "" {
		if !c.Valid() {
			http.Error(w, "Unknown category", http.StatusBadRequest)
			return
		}
		out = Listing{Gate: []Profile{}, Window: h.Catalog.WindowByCategory(c)}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
