// Command fridge is a terminal client for the Fridge meal-planning backend.
//
// Usage:
//
//	fridge login --email you@example.com --password secret
//	fridge recipes generate --ingredients "eggs, rice" --vegan
//	fridge dashboard
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
