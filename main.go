package main

import (
	"os"

	"github.com/swasthya/scheduling/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
