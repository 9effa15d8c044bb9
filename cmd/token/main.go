// Command token mints a bearer token for local development.
// Token issuance is not part of the API; this signs with the same
// JWT_SECRET the server verifies with.
//
//	go run ./cmd/token -user 6f1c2a9e-4b7d-4e1a-9c3f-0d2b8e5a7c11 -ttl 24h
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/pkordes/spotbnb/internal/middleware"
)

func main() {
	userFlag := flag.String("user", "", "user id (uuid) to put in the token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}
	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		slog.Error("invalid -user", "value", *userFlag, "error", err)
		os.Exit(2)
	}

	token, err := middleware.NewAuthenticator(secret).SignToken(userID, *ttl)
	if err != nil {
		slog.Error("sign token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
