package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	auth "Meyerhof/internal/auth"
	analysis "Meyerhof/internal/calc/analysis"
	autodesign "Meyerhof/internal/calc/autodesign"
	bearing "Meyerhof/internal/calc/bearing"
	importer "Meyerhof/internal/calc/importer"
	loads "Meyerhof/internal/calc/loads"
	report "Meyerhof/internal/calc/report"
	config "Meyerhof/internal/config"
	log "Meyerhof/internal/log"
	repo "Meyerhof/internal/repo"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

// HandleList registers every route on router and returns the limiter
// guarding /api so the caller can prune it.
func HandleList(router *mux.Router, cfg config.Config, store repo.Repository) *auth.IPRateLimiter {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: store, Secure: cfg.TLS()}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	bearingH := &analysis.Handler{DefaultMethod: cfg.DefaultMethod, Workers: cfg.Workers}
	importH := &importer.Handler{DefaultMethod: cfg.DefaultMethod, Workers: cfg.Workers, MaxBytes: cfg.UploadLimit()}
	reportH := &report.Handler{DefaultMethod: cfg.DefaultMethod, Workers: cfg.Workers}
	loadsH := &loads.Handler{}
	autoH := &autodesign.Handler{}

	api.HandleFunc("/tools/bearing/calc", bearingH.Calc).Methods("POST")
	api.HandleFunc("/tools/bearing/import", importH.Upload).Methods("POST")
	api.HandleFunc("/tools/bearing/report/pdf", reportH.PDF).Methods("POST")
	api.HandleFunc("/tools/bearing/report/xlsx", reportH.XLSX).Methods("POST")
	api.HandleFunc("/tools/bearing/size", autoH.Footing).Methods("POST")
	api.HandleFunc("/tools/loads/calc", loadsH.Calc).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	projectH := &analysis.ProjectHandler{Repo: store, DefaultMethod: cfg.DefaultMethod, Workers: cfg.Workers}
	secureApi.HandleFunc("/projects", projectH.Create).Methods("POST")
	secureApi.HandleFunc("/projects", projectH.List).Methods("GET")
	secureApi.HandleFunc("/projects/{id:[0-9]+}", projectH.Get).Methods("GET")
	secureApi.HandleFunc("/projects/{id:[0-9]+}/run", projectH.Run).Methods("POST")
	return limiter
}

// openStore connects to Postgres, or keeps everything in memory when no
// database is configured.
func openStore(ctx context.Context, cfg config.Config) (repo.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Warnf("DATABASE_URL is not set, users and projects are kept in memory")
		return repo.NewMemory(), func() {}, nil
	}
	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	store := repo.NewPostgresDB(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, func() { closeDB(db) }, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.Errorf("closing database: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := log.Init(cfg.Debug); err != nil {
		return err
	}
	defer log.Sync()
	if err := cfg.Server(); err != nil {
		return err
	}
	if _, err := bearing.LookupMethod(cfg.DefaultMethod); err != nil {
		return fmt.Errorf("DEFAULT_METHOD: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	router := mux.NewRouter()
	limiter := HandleList(router, cfg, store)
	wg.Add(1)
	go func() {
		defer wg.Done()
		limiter.Run(ctx, time.Minute, 10*time.Minute)
	}()

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           CORS(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Infof("Starting server on %s (tls=%t, method=%s)", cfg.Addr, cfg.TLS(), cfg.DefaultMethod)
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("stopping server: %w", err)
	}
	wg.Wait()
	log.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
