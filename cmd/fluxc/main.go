package main

import (
	"os"

	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/cli"
)

var version = "dev"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}
