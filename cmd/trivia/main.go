// Package main provides the entry point for the daily-trivia application.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/yourusername/daily-trivia/cmd/trivia/app"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
