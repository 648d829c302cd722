package main

import (
	"log"
	"os"

	"gym-management-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Error: ", err)
	}

	steps := []struct {
		name string
		run  func(*gorm.DB) (int, error)
	}{
		{"admin account", func(db *gorm.DB) (int, error) {
			return seedAdmin(db, getEnv("SEED_ADMIN_EMAIL", "admin@ironpulse.gym"), getEnv("SEED_ADMIN_PASSWORD", "admin12345"))
		}},
		{"membership packages", seedPackages},
		{"gym services", seedServices},
		{"nutrition tips", seedNutritionTips},
		{"store products", seedProducts},
	}

	for _, step := range steps {
		color.Cyan("Seeding %s...", step.name)
		created, err := step.run(db)
		if err != nil {
			color.Red("✗ %s: %v", step.name, err)
			os.Exit(1)
		}
		if created == 0 {
			color.Yellow("  nothing to do, %s already present", step.name)
			continue
		}
		color.Green("✓ created %d %s", created, step.name)
	}

	color.Green("Seeding completed!")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
