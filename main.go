package main

import (
	"os"

	"github.com/evalyze/evalyze/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
