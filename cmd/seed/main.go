package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/secondchance/marketplace/config"
	"github.com/secondchance/marketplace/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	adminEmail := cfg.AdminEmail
	if adminEmail == "" {
		adminEmail = "admin@secondchance.local"
	}
	adminID := seedUser(db, adminEmail, "admin123", "storeAdmin", "admin")
	sellerID := seedUser(db, "seller@secondchance.local", "password123", "demoSeller", "user")
	fmt.Printf("seeded admin=%s seller=%s\n", adminID, sellerID)

	products := []struct {
		name, category string
		price          float64
	}{
		{"iPhone 12, lightly used", "Phones", 320},
		{"Samsung 43\" smart TV", "TVs", 210},
		{"Bosch washing machine", "Electronics", 180},
		{"Leather jacket, size M", "Fashion", 45},
		{"Oak dining table", "Furnitures", 150},
		{"Wool blanket set", "Home-Comforts", 25},
		{"Stand mixer", "Kitchen", 60},
		{"City bike, 21 gears", "Transport", 95},
		{"Hair dryer", "Personal-Care", 15},
	}
	for _, p := range products {
		if _, err := db.Exec(`
			INSERT INTO products (name, description, category, price, image_url, seller_id, seller_phone)
			SELECT $1, $2, $3, $4, '', $5, '+100000000'
			WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1 AND seller_id = $5)
		`, p.name, "Seeded sample listing", p.category, p.price, sellerID); err != nil {
			log.Fatalf("failed to seed product %q: %v", p.name, err)
		}
	}
	fmt.Printf("seeded %d sample products\n", len(products))
}

func seedUser(db *sql.DB, email, password, username, role string) string {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, username, password_hash, provider, role, is_verified)
		VALUES (lower($1), $2, $3, 'local', $4, true)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
		RETURNING id
	`, email, username, hash, role).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}
