package main

import (
	"fmt"
	"os"

	"polycap/cmd/polycap/cmd"
	"polycap/internal/config"
)

func main() {
	// Initialize configuration (non-blocking - only warns about missing keys)
	_, err := config.InitializeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Configuration Warning: %v\n", err)
		fmt.Fprintf(os.Stderr, "💡 To enable cloud engines, copy .env.example to .env and add your API keys\n")
		// Continue execution - local engines work without any keys
	}

	// Execute the CLI command
	cmd.Execute()
}
