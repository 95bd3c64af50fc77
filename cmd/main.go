package main

import (
	"os"

	"github.com/acrostic/chainstore/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
