package main

import (
	"os"

	"github.com/niftylabs/niftysignal/cmd/niftysignal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
