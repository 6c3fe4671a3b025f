package main

import (
	"os"

	"github.com/rustyeddy/bitjournal/cmd/bitjournal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
