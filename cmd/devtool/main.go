package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	registry := NewRegistry(
		&CheckDBCommand{},
		&MigrateCommand{},
		&AddUserCommand{},
		&ExplainScoreCommand{},
		&RecalibrateCommand{},
	)

	if err := registry.Dispatch(os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			PrintError("%v", err)
		}
		os.Exit(1)
	}
}
