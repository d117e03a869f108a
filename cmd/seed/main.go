// seed inserts an admin user and a handful of inventory items into the
// local dev database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ErlanBelekov/storefront-api/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@storefront.local"
	adminPassword = "change-me-after-first-login"
)

type itemSpec struct {
	name        string
	description string
	priceCents  int64
	quantity    int
}

var items = []itemSpec{
	{"Espresso Cup", "Stoneware, 90ml", 1250, 48},
	{"Pour-Over Kettle", "Gooseneck, 1L", 4900, 12},
	{"Burr Grinder", "Conical, 40mm", 12900, 7},
	{"Filter Papers", "Size 02, pack of 100", 650, 200},
	{"Ceramic Dripper", "Size 02", 2400, 30},
	{"Digital Scale", "0.1g resolution", 3900, 15},

	// Soft-deleted example so GET /inventory/deleted has something to show
	{"Discontinued Mug", "Old line, no restock", 900, 0},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert admin user
	var adminID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password, role, images)
		VALUES ('Admin', $1, $2, 'admin', '[]')
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		adminEmail, string(hash),
	).Scan(&adminID)
	if err != nil {
		log.Fatalf("upsert admin: %v", err)
	}

	// Insert items, skip any that already exist (idempotent re-runs)
	var inserted, skipped int
	for _, spec := range items {
		deleted := spec.name == "Discontinued Mug"
		tag, err := pool.Exec(ctx, `
			INSERT INTO inventory (name, description, price_cents, quantity, deleted)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (name) DO NOTHING`,
			spec.name, spec.description, spec.priceCents, spec.quantity, deleted,
		)
		if err != nil {
			log.Fatalf("insert item %s: %v", spec.name, err)
		}
		if tag.RowsAffected() == 0 {
			skipped++
		} else {
			inserted++
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Admin:         %s\n", adminEmail)
	fmt.Printf("  Admin ID:      %s\n", adminID)
	fmt.Printf("  Items created: %d  (skipped %d already existing)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in as the admin:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/users/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", adminEmail, adminPassword)
	fmt.Println("    # → {\"message\":\"Login successful\",\"data\":{\"token\":\"eyJ...\"}}")
	fmt.Println()
	fmt.Println("  Step 2 — browse the inventory:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/inventory -H \"Authorization: Bearer $JWT\"")
	fmt.Println("    curl -s http://localhost:8080/inventory/deleted -H \"Authorization: Bearer $JWT\"")
	fmt.Println()
	fmt.Println("  Step 3 — soft-delete and restore an item (use an ID from above):")
	fmt.Println()
	fmt.Println("    curl -s -X DELETE http://localhost:8080/inventory/ITEM_ID -H \"Authorization: Bearer $JWT\"")
	fmt.Println("    curl -s -X POST http://localhost:8080/inventory/ITEM_ID/restore -H \"Authorization: Bearer $JWT\"")
}
