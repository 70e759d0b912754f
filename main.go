package main

import (
	"os"

	"github.com/jmecosta/sonar-visual-studio/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
