package main

import (
	"os"

	"github.com/bnema/versiondb-watch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
