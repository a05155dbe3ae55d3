// Command adduser provisions a credential record so operators can create
// accounts without going through the HTTP register endpoint.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/mahendrareddyduggireddy/backendproject/internal/auth"
	"github.com/mahendrareddyduggireddy/backendproject/internal/cli"
)

func main() {
	username := flag.String("username", "", "username for the new account")
	password := flag.String("password", "", "password for the new account")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	if *username == "" || *password == "" {
		logger.Error("Both -username and -password are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := cli.LoadAndValidateConfig(logger)
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	authSvc := auth.NewService(repo, cfg.JWTSecret, cfg.TokenTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	u, err := authSvc.Register(ctx, *username, *password)
	if err != nil {
		logger.Error("Failed to create user", "username", *username, "error", err)
		os.Exit(1)
	}

	logger.Info("User created", "id", u.ID, "username", u.Username)
}
