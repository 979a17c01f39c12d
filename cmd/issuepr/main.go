package main

import (
	"os"

	"github.com/alanmeadows/issuepr/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
