package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
	"trip-planner-service/internal/adapters/roadnetwork"
	"trip-planner-service/internal/adapters/routing"
	"trip-planner-service/internal/adapters/store"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (OSRM, Overpass, sqlite/postgres) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	osrmURL := config.Get("OSRM_BASE_URL", "https://router.project-osrm.org")
	overpassURL := config.Get("OVERPASS_BASE_URL", "https://overpass-api.de")
	dbPath := config.Get("DB_PATH", "data/trips.db")
	databaseURL := os.Getenv("DATABASE_URL")

	tripRequester, err := routing.NewOSRMTripProvider(osrmURL, 60*time.Second)
	if err != nil {
		log.Fatal(err)
	}

	networkProvider, err := roadnetwork.NewOverpassProvider(overpassURL, 90*time.Second)
	if err != nil {
		log.Fatal(err)
	}

	tripStore, closeDB, err := openTripStore(databaseURL, dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer closeDB()

	router := api.NewRouter(networkProvider, tripRequester, tripStore)

	// Timeouts are tuned for uncached planning latency: the Overpass and
	// OSRM round trips dominate.
	log.Printf("Server listening addr=:%s osrm=%s overpass=%s", port, osrmURL, overpassURL)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openTripStore selects the persistence backend: postgres when
// DATABASE_URL is set, local sqlite otherwise.
func openTripStore(databaseURL, dbPath string) (ports.TripStore, func(), error) {
	if strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := store.InitPostgresSchema(pg); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return store.NewSQLTripStore(pg), func() { pg.Close() }, nil
	}

	sqlite, err := openSqlite(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := store.InitSqliteSchema(sqlite); err != nil {
		sqlite.Close()
		return nil, nil, err
	}
	return store.NewSqliteTripStore(sqlite), func() { sqlite.Close() }, nil
}

func openSqlite(dbPath string) (*sql.DB, error) {
	sqlite, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", dbPath, err)
	}

	if err := sqlite.Ping(); err != nil {
		return nil, fmt.Errorf("verify sqlite connection to %q: %w", dbPath, err)
	}

	return sqlite, nil
}
