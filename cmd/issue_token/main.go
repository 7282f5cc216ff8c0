// Command issue_token prints a bearer token for local testing of the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ai-quizzer/internal/config"
	"ai-quizzer/internal/service"
)

func main() {
	userID := flag.String("user", "", "student id to embed in the token")
	email := flag.String("email", "", "optional email claim")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: issue_token -user <id> [-email <address>]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	authService, err := service.NewAuthService(cfg.JWT)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create AuthService: %v\n", err)
		os.Exit(1)
	}
	token, err := authService.IssueToken(context.Background(), *userID, *email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
