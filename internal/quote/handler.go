package quote

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Ironforge/internal/auth"
	"Ironforge/internal/catalog"

	"github.com/gorilla/mux"
)

type Handler struct {
	Store   *Store
	Catalog *catalog.Catalog
	// Thumbnail renders the small preview kept on each item. Optional.
	Thumbnail func(Item) ([]byte, error)
}

// Response is a quote with its derived totals.
type Response struct {
	*Quote
	Totals Totals `json:"totals"`
}

func writeQuote(w http.ResponseWriter, status int, q *Quote) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Quote: q, Totals: q.Totals()})
}

func userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}
	return id, ok
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	writeQuote(w, http.StatusOK, h.Store.Get(id))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	item, err := NewItem(req, h.Catalog)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, warn := range item.Calculations.Warnings {
		log.Printf("quote item %s: %s", item.ID, warn)
	}
	if h.Thumbnail != nil {
		if png, err := h.Thumbnail(item); err != nil {
			log.Printf("quote item %s: preview: %v", item.ID, err)
		} else {
			item.Preview = png
		}
	}

	q, _ := h.Store.Update(id, func(q *Quote) error {
		q.Add(item)
		return nil
	})
	writeQuote(w, http.StatusCreated, q)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	itemID := mux.Vars(r)["id"]
	q, err := h.Store.Update(id, func(q *Quote) error {
		return q.Remove(itemID)
	})
	if errors.Is(err, ErrItemNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeQuote(w, http.StatusOK, q)
}

func (h *Handler) SetHardware(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	var lines []HardwareItem
	if err := json.NewDecoder(r.Body).Decode(&lines); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	q, _ := h.Store.Update(id, func(q *Quote) error {
		q.SetHardware(lines)
		return nil
	})
	writeQuote(w, http.StatusOK, q)
}

func (h *Handler) SetInstallation(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	var in Installation
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	q, err := h.Store.Update(id, func(q *Quote) error {
		return q.SetInstallation(in)
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeQuote(w, http.StatusOK, q)
}

func (h *Handler) SetDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	var d Details
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	q, _ := h.Store.Update(id, func(q *Quote) error {
		q.Details = d
		return nil
	})
	writeQuote(w, http.StatusOK, q)
}

func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	q := h.Store.Get(id)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+q.Number+".xlsx\"")
	if err := WriteXLSX(w, q); err != nil {
		log.Printf("quote xlsx: %v", err)
		http.Error(w, "Spreadsheet generation error", http.StatusInternalServerError)
	}
}
