package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandlerList(t *testing.T) {
	h := &Handler{Catalog: Default()}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	var all Listing
	if err := json.NewDecoder(rec.Body).Decode(&all); err != nil {
		t.Fatal(err)
	}
	if len(all.Gate) != len(DefaultGateProfiles()) || len(all.Window) != len(DefaultWindowProfiles()) {
		t.Errorf("got %d gate and %d window rows", len(all.Gate), len(all.Window))
	}

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/catalog?category=outer-frame", nil))
	var frames Listing
	if err := json.NewDecoder(rec.Body).Decode(&frames); err != nil {
		t.Fatal(err)
	}
	if len(frames.Gate) != 0 || len(frames.Window) == 0 {
		t.Errorf("unexpected filtered listing %+v", frames)
	}
	for _, p := range frames.Window {
		if p.Category != OuterFrame {
			t.Errorf("%s is %s", p.ID, p.Category)
		}
	}

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/catalog?category=roof", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown category: expected 400, got %d", rec.Code)
	}
}
