package main

import (
	"os"

	"github.com/mrhapile/skindx/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
