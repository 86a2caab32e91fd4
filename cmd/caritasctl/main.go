package main

import (
	"os"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
