package main

import (
	"database/sql"

	"github.com/akarpov/online-store/pkg/auth"
	"github.com/akarpov/online-store/pkg/config"
	"github.com/akarpov/online-store/pkg/database"
	"github.com/akarpov/online-store/pkg/logger"
)

// Seeds the database with an admin account and a starter category set.
// Run the server once first so the schema exists.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.ServiceName+"-seed", cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := seedAdmin(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed admin account")
	}

	if err := seedCategories(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed categories")
	}

	logger.Logger.Info().Msg("Seeding completed")
}

func seedAdmin(db *sql.DB) error {
	hashed, err := auth.HashPassword("admin12345")
	if err != nil {
		return err
	}

	// Idempotent: re-running leaves an existing admin untouched.
	_, err = db.Exec(`
		INSERT INTO users (username, email, password, role, is_active, created_at, updated_at)
		VALUES ('admin', 'admin@store.local', $1, 'admin', true, NOW(), NOW())
		ON CONFLICT (username) DO NOTHING`, hashed)
	if err != nil {
		return err
	}

	logger.Logger.Info().Str("username", "admin").Msg("Admin account ready")
	return nil
}

func seedCategories(db *sql.DB) error {
	names := []string{"Electronics", "Books", "Clothing", "Home & Garden", "Sports"}

	for _, name := range names {
		if _, err := db.Exec(`
			INSERT INTO categories (name, is_active, created_at, updated_at)
			VALUES ($1, true, NOW(), NOW())
			ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return err
		}
	}

	logger.Logger.Info().Int("count", len(names)).Msg("Categories ready")
	return nil
}
