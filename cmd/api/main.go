// cmd/api/main.go
//
// Lean ops entrypoint: no data load, just health and store reachability,
// for probes and deploy checks.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/princevibe/books-backend/internal/config"
	"github.com/princevibe/books-backend/internal/repository"
	"github.com/princevibe/books-backend/internal/repository/localstore"
	"github.com/princevibe/books-backend/internal/repository/mongodb"
	"github.com/princevibe/books-backend/internal/repository/postgres"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	cfg := config.Load()
	probeTimeout := time.Duration(cfg.Remote.ProbeTimeoutSeconds) * time.Second

	local, err := localstore.New(cfg.Local.DataDir)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}

	var remote repository.Books
	switch cfg.Remote.Driver {
	case "mongo":
		if cfg.Remote.Mongo.URI != "" {
			ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
			repo, err := mongodb.NewBooksRepository(ctx, cfg.Remote.Mongo.URI, cfg.Remote.Mongo.DBName)
			cancel()
			if err != nil {
				log.Printf("Mongo remote store unavailable: %v", err)
			} else {
				remote = repo
			}
		}
	case "postgres":
		db, err := postgres.NewDB(&cfg.Remote.Postgres)
		if err != nil {
			log.Printf("Postgres remote store unavailable: %v", err)
		} else {
			remote = postgres.NewBooksRepository(db)
		}
	}

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/status", func(w http.ResponseWriter, req *http.Request) {
		status := map[string]string{
			"driver": cfg.Remote.Driver,
			"local":  probeStatus(req.Context(), local, probeTimeout),
		}
		if remote != nil {
			status["remote"] = probeStatus(req.Context(), remote, probeTimeout)
		} else {
			status["remote"] = "unconfigured"
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}).Methods("GET")

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Status server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func probeStatus(ctx context.Context, books repository.Books, timeout time.Duration) string {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := books.Ping(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
