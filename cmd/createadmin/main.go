// Command createadmin bootstraps the first (admin) account from the local
// machine, without exposing the bootstrap over HTTP. It refuses to run
// once any user exists.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"studio-site-backend/config"
	"studio-site-backend/internal/repository/postgres"
	"studio-site-backend/internal/usecase"
	"studio-site-backend/pkg/database"
	"studio-site-backend/pkg/token"
)

func main() {
	name := flag.String("name", "", "admin display name")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password (min 6 chars)")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createadmin -name NAME -email EMAIL -password PASSWORD")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.AdminSecretKey == "" {
		log.Fatal("ADMIN_SECRET_KEY must be set")
	}

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	userRepo := postgres.NewUserRepository(dbPool)
	tokens := token.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiresDays)*24*time.Hour)
	authUC := usecase.NewAuthUsecase(userRepo, tokens, cfg.AdminSecretKey)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	payload, err := authUC.CreateAdmin(ctx, *name, *email, *password, cfg.AdminSecretKey)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin created: %s <%s>\n", payload.Name, payload.Email)
}
