package main

import (
	"os"

	"freemodels/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
