package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"kycintake/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
