package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/clinic-appointment-crm/clinic-service/internal/accounts"
	"github.com/clinic-appointment-crm/clinic-service/internal/db"
)

func main() {
	log.Println("Super Admin Bootstrap Job - Starting")

	username := os.Getenv("BOOTSTRAP_ADMIN_USERNAME")
	email := os.Getenv("BOOTSTRAP_ADMIN_EMAIL")
	password := os.Getenv("BOOTSTRAP_ADMIN_PASSWORD")
	if username == "" || email == "" || password == "" {
		log.Fatal("BOOTSTRAP_ADMIN_USERNAME, BOOTSTRAP_ADMIN_EMAIL and BOOTSTRAP_ADMIN_PASSWORD must be set")
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.EnsureSchema(ctx, database); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	bootstrap := accounts.NewBootstrapService(database)

	count, err := bootstrap.SuperAdminCount(ctx)
	if err != nil {
		log.Fatalf("Failed to count super admins: %v", err)
	}
	if count > 0 {
		log.Printf("Found %d existing super admin(s). Nothing to do.", count)
		os.Exit(0)
	}

	accountID, err := bootstrap.SeedSuperAdmin(ctx, username, email, password)
	if err != nil {
		log.Fatalf("Failed to seed super admin: %v", err)
	}

	log.Printf("✓ Super admin '%s' created (account id %d)", username, accountID)
	log.Println("Bootstrap Job - Finished")
}
