package main

import (
	"os"

	"github.com/cwbudde/zen/cmd/zen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
