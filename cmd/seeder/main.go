package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/courtside/internal/database"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "courtside.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	// Optional remote target.
	config["TURSO_PRIMARY_URL"] = os.Getenv("TURSO_PRIMARY_URL")
	config["TURSO_AUTH_TOKEN"] = os.Getenv("TURSO_AUTH_TOKEN")
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	log.Info("Successfully connected to the database.")

	type seedUser struct {
		id, email, name string
	}
	players := []seedUser{
		{uuid.NewString(), "seed-a@courtside.test", "Seeder Player A"},
		{uuid.NewString(), "seed-b@courtside.test", "Seeder Player B"},
		{uuid.NewString(), "seed-c@courtside.test", "Seeder Player C"},
		{uuid.NewString(), "seed-d@courtside.test", "Seeder Player D"},
	}
	for _, p := range players {
		_, err := db.Exec(
			"INSERT OR IGNORE INTO users (id, email, name, role, level, rating, created_at) VALUES (?, ?, ?, 'player', 'intermediate', 1000, ?)",
			p.id, p.email, p.name, time.Now().Unix(),
		)
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.name, err)
		}
	}
	log.Info("Ensured dummy players exist.")

	courtIDs := make([]string, 0, 4)
	surfaces := []string{"hard", "clay", "grass", "hard"}
	for i, surface := range surfaces {
		id := uuid.NewString()
		_, err := db.Exec(
			"INSERT OR IGNORE INTO courts (id, name, surface, indoor, is_active, created_at) VALUES (?, ?, ?, ?, 1, ?)",
			id, fmt.Sprintf("Seeded Court %d", i+1), surface, i%2, time.Now().Unix(),
		)
		if err != nil {
			log.Fatalf("Failed to insert court: %s", err)
		}
		courtIDs = append(courtIDs, id)
	}
	log.Info("Ensured dummy courts exist.")

	const batchSize = 100 // Insert 100 reservations at a time
	const numReservations = 10000

	log.Info("Preparing to insert dummy reservations...", "total", numReservations, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*8)

	for i := 0; i < numReservations; i++ {
		// Historical slots only, marching backwards one hour per court,
		// so the seeded data never collides with live bookings or itself.
		start := time.Now().Truncate(time.Hour).Add(-time.Duration(i/len(courtIDs)+24) * time.Hour)
		status := "confirmed"
		if rand.Intn(10) == 0 {
			status = "cancelled"
		}

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			uuid.NewString(),
			courtIDs[i%len(courtIDs)],
			"court",
			players[rand.Intn(len(players))].id,
			start.Unix(),
			start.Add(time.Hour).Unix(),
			status,
			start.Add(-48*time.Hour).Unix(),
		)

		if (i+1)%batchSize == 0 || (i+1) == numReservations {
			stmt := fmt.Sprintf(`
				INSERT INTO reservations (id, resource_id, resource_kind, user_id, start_time, end_time, status, created_at)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*8)
			log.Info("Inserted batch", "completed", i+1, "total", numReservations)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy reservations.", "duration", duration)
}
