package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Ironforge/internal/calc/gate"
	"Ironforge/internal/catalog"
	"Ironforge/internal/config"
	"Ironforge/internal/quote"
	repo "Ironforge/internal/repo"

	"github.com/gorilla/mux"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	router := mux.NewRouter()
	HandleList(router, deps{
		cfg:     config.Config{TokenKey: "test", RateLimit: 1000, RateBurst: 100},
		users:   repo.NewMemoryUserDB(),
		catalog: catalog.Default(),
		quotes:  quote.NewStore(),
	})
	srv := httptest.NewServer(CORS(router))
	t.Cleanup(srv.Close)
	return srv
}

func TestQuoteFlow(t *testing.T) {
	srv := newServer(t)
	client := srv.Client()

	post := func(path, body string, cookies ...*http.Cookie) *http.Response {
		req, _ := http.NewRequest(http.MethodPost, srv.URL+path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		for _, c := range cookies {
			req.AddCookie(c)
		}
		res, err := client.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	res := post("/api/register", `{"login":"mira","email":"mira@example.com","password":"secret1"}`)
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("register: %d", res.StatusCode)
	}
	res = post("/api/login", `{"login":"mira","password":"secret1"}`)
	res.Body.Close()
	cookies := res.Cookies()
	if res.StatusCode != http.StatusOK || len(cookies) == 0 {
		t.Fatalf("login: %d", res.StatusCode)
	}

	res = post("/api/user/tools/gate/calc", `{}`)
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("tools without session: expected 401, got %d", res.StatusCode)
	}

	cfg, _ := json.Marshal(gate.Default())
	res = post("/api/user/tools/gate/calc", string(cfg), cookies...)
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("gate calc: %d", res.StatusCode)
	}

	res = post("/api/user/quote/items", `{"productType":"gate","gate":`+string(cfg)+`,"quantity":2}`, cookies...)
	var q quote.Response
	json.NewDecoder(res.Body).Decode(&q)
	res.Body.Close()
	if res.StatusCode != http.StatusCreated || len(q.Items) != 1 || q.Totals.Grand <= 0 {
		t.Fatalf("add item: %d %+v", res.StatusCode, q)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/user/quote/pdf", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	res, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK || res.Header.Get("Content-Type") != "application/pdf" {
		t.Errorf("pdf: %d %s", res.StatusCode, res.Header.Get("Content-Type"))
	}
}

func TestPublicRoutes(t *testing.T) {
	srv := newServer(t)

	res, err := srv.Client().Get(srv.URL + "/api/catalog")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("catalog: %d", res.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/user/quote", nil)
	res, err = srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent || res.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("preflight: %d", res.StatusCode)
	}
}
