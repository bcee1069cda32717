package main

import (
	"log"
	"os"
	"trip-planner-service/internal/adapters/store"
	"trip-planner-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool initializes the postgres schema for trip persistence.
// Run it once against a fresh database before starting the server
// with DATABASE_URL set.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	if err := store.InitPostgresSchema(pg); err != nil {
		log.Fatal(err)
	}

	log.Println("Postgres schema initialized")
}
