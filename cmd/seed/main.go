package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/chinmayajanata/backend/config"
	"github.com/chinmayajanata/backend/internal/domain/rank"
	"github.com/chinmayajanata/backend/pkg/helpers"
)

// Seeds the admin principal and a demo center so a fresh install is usable
// right away.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "changeme108"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, password_hash, is_verified, verification_level, points)
		VALUES ($1, $2, TRUE, $3, 0)
		ON CONFLICT (username) DO UPDATE SET verification_level = EXCLUDED.verification_level
		RETURNING id
	`, cfg.AdminName, hash, rank.GlobalHead).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s username=%s password=%s\n", id, cfg.AdminName, password)

	var centerID int64
	err = db.QueryRow(`
		INSERT INTO centers (center_id, name, latitude, longitude, is_verified)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (center_id) DO UPDATE SET name = EXCLUDED.name
		RETURNING center_id
	`, int64(1), "Sidhbari", 32.1453, 76.3229).Scan(&centerID)
	if err != nil {
		log.Fatalf("failed to seed center: %v", err)
	}
	fmt.Printf("seeded center: center_id=%d\n", centerID)
}
