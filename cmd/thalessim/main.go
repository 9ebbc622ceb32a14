package main

import (
	"os"

	"github.com/andrei-cloud/thalessim/cmd/thalessim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
