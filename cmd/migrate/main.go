package main

import (
	"log"
	"os"

	"gym-management-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. Extensions GORM does not manage
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. Tables and indexes
	log.Println("Running AutoMigrate...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Error: ", err)
	}

	// 5. Views AutoMigrate cannot express
	postMigrationSQL := []string{
		`CREATE OR REPLACE VIEW member_payment_history AS
		 SELECT p.account_id, a.full_name, a.email, p.plan, p.amount, p.currency, p.method, p.status, p.completed_at, p.created_at
		 FROM payments p
		 JOIN accounts a ON a.id = p.account_id
		 ORDER BY p.created_at DESC;`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Migration completed!")
}
