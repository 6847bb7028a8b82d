// Command token issues a bearer token for an existing profile, for use
// against a server started with JWT_SECRET.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"jobpay/internal/config"
	"jobpay/internal/logger"
	"jobpay/internal/repositories"
	"jobpay/internal/utils"
)

func main() {
	profileID := flag.Uint("profile", 0, "profile id to issue the token for")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	config.LoadEnv()

	log, err := logger.New(config.Environment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *profileID == 0 {
		log.Fatal("-profile must be set")
	}
	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set in environment")
	}

	if err := repositories.InitDB(log); err != nil {
		log.Fatal("failed to initialize database", "error", err)
	}
	defer repositories.Close(log)

	profiles := repositories.NewProfileRepository(repositories.DB, nil, log)
	profile, err := profiles.GetByID(context.Background(), *profileID)
	if err != nil {
		log.Fatal("profile lookup failed", "profile_id", *profileID, "error", err)
	}

	token, err := utils.GenerateProfileToken(profile.ID, secret, *ttl)
	if err != nil {
		log.Fatal("failed to sign token", "error", err)
	}

	log.Info("issued token", "profile_id", profile.ID, "type", profile.Type, "ttl", ttl.String())
	fmt.Println(token)
}
