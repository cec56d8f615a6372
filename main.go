package main

import (
	"github.com/joho/godotenv"

	"airline-desk-cli/cmd"
)

func main() {
	// Missing .env is fine, the client falls back to defaults.
	_ = godotenv.Load()
	cmd.Execute()
}
