package main

import (
	"os"

	"github.com/picotools/cli/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
