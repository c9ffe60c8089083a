package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	auth "Ironforge/internal/auth"
	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/premium/autodesign"
	"Ironforge/internal/calc/premium/batch"
	"Ironforge/internal/calc/premium/importer"
	"Ironforge/internal/calc/premium/recommend"
	"Ironforge/internal/calc/preview"
	report "Ironforge/internal/calc/report"
	"Ironforge/internal/calc/window"
	"Ironforge/internal/catalog"
	"Ironforge/internal/config"
	"Ironforge/internal/quote"
	repo "Ironforge/internal/repo"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

type deps struct {
	cfg      config.Config
	users    repo.Repository
	catalog  *catalog.Catalog
	provider autodesign.Provider
	quotes   *quote.Store
}

func HandleList(mux *mux.Router, d deps) {
	authEnv := &auth.Authenv{JWTkey: []byte(d.cfg.TokenKey), Repo: d.users, Secure: d.cfg.SecureCookies}
	limiter := auth.NewIPRateLimiter(rate.Limit(d.cfg.RateLimit), d.cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	catalogH := &catalog.Handler{Catalog: d.catalog}
	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/catalog", catalogH.List).Methods("GET")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	gateH := &gate.Handler{Catalog: d.catalog}
	windowH := &window.Handler{Catalog: d.catalog}
	previewH := &preview.Handler{Catalog: d.catalog}
	suggestH := &autodesign.Handler{Provider: d.provider, Catalog: d.catalog}
	recommendH := &recommend.Handler{Catalog: d.catalog}
	batchH := &batch.Handler{Catalog: d.catalog}
	importH := &importer.Handler{Catalog: d.catalog}

	secureApi.HandleFunc("/tools/gate/calc", gateH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/gate/import", importH.Gates).Methods("POST")
	secureApi.HandleFunc("/tools/window/calc", windowH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/window/resize", windowH.Resize).Methods("POST")
	secureApi.HandleFunc("/tools/preview", previewH.Draw).Methods("POST")
	secureApi.HandleFunc("/tools/suggest", suggestH.Suggest).Methods("POST")
	secureApi.HandleFunc("/tools/recommend/frame", recommendH.Frame).Methods("POST")
	secureApi.HandleFunc("/tools/batch", batchH.Run).Methods("POST")

	quoteH := &quote.Handler{Store: d.quotes, Catalog: d.catalog, Thumbnail: preview.ItemThumbnail(d.catalog)}
	reportH := &report.Handler{Store: d.quotes, Catalog: d.catalog}

	secureApi.HandleFunc("/quote", quoteH.Get).Methods("GET")
	secureApi.HandleFunc("/quote/items", quoteH.AddItem).Methods("POST")
	secureApi.HandleFunc("/quote/items/{id}", quoteH.RemoveItem).Methods("DELETE")
	secureApi.HandleFunc("/quote/hardware", quoteH.SetHardware).Methods("PUT")
	secureApi.HandleFunc("/quote/installation", quoteH.SetInstallation).Methods("PUT")
	secureApi.HandleFunc("/quote/details", quoteH.SetDetails).Methods("PUT")
	secureApi.HandleFunc("/quote/pdf", reportH.Generate).Methods("GET")
	secureApi.HandleFunc("/quote/xlsx", quoteH.XLSX).Methods("GET")
}

func openUsers(ctx context.Context, url string) (repo.Repository, func(), error) {
	if url == "" {
		log.Println("DATABASE_URL is not set, accounts are kept in memory")
		return repo.NewMemoryUserDB(), func() {}, nil
	}
	db, err := auth.InitDB(url)
	if err != nil {
		return nil, nil, err
	}
	users := repo.NewPostgresUserDB(db)
	if err := users.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return users, func() { db.Close() }, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		if cat, err = catalog.LoadFile(cfg.CatalogPath); err != nil {
			log.Fatalf("catalog: %v", err)
		}
		log.Printf("Loaded catalog from %s", cfg.CatalogPath)
	}

	users, closeDB, err := openUsers(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer closeDB()

	var provider autodesign.Provider
	gp, err := autodesign.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	switch {
	case err == nil:
		provider = gp
	case errors.Is(err, autodesign.ErrUnavailable):
		log.Println("GEMINI_API_KEY is not set, suggestions use frame recommendation")
	default:
		log.Fatalf("gemini: %v", err)
	}

	mux := mux.NewRouter()
	HandleList(mux, deps{
		cfg:      cfg,
		users:    users,
		catalog:  cat,
		provider: provider,
		quotes:   quote.NewStore(),
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           CORS(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.Addr)
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLSCert != "" {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
