package main

import (
	"os"

	"github.com/Vovarama1992/memo_coach/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
