// Command useradd provisions an account for the booking service. With a
// password it stores a bcrypt hash for local login; without one the account
// is created hashless and authenticates against the configured directory.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"roompla/internal/config"
	"roompla/internal/database"
	"roompla/internal/model"
	"roompla/internal/repository"
	"roompla/internal/utils"
)

func main() {
	id := flag.String("user", "", "account identifier (required)")
	name := flag.String("name", "", "display name (required)")
	contact := flag.String("contact", "", "contact string, e.g. an email address (required)")
	password := flag.String("password", "", "password for local login; empty makes the account directory-backed")
	flag.Parse()

	if *id == "" || *name == "" || *contact == "" {
		flag.Usage()
		log.Fatal("user, name and contact are required")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	u := &model.User{ID: *id, DisplayName: *name, ContactInfo: *contact}
	if *password != "" {
		hash, err := utils.HashPassword(*password, cfg.BcryptCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		u.PasswordHash = &hash
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if err := repository.NewUserRepo(db).Upsert(ctx, u); err != nil {
		log.Fatalf("store user: %v", err)
	}
	log.Printf("stored user %s", u.ID)
}
