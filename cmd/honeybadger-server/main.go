package main

import (
	"os"

	"github.com/badgerworks/honeybadger/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
