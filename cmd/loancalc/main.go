package main

import (
	"os"

	"loan-calculator/cmd/loancalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
