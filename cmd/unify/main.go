package main

import (
	"os"

	"github.com/viant/unify/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
