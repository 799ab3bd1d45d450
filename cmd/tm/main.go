package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"task-manager/internal/cli"
	"task-manager/internal/config"
)

func main() {
	root := cli.NewRootCommand(config.NewLoader())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
