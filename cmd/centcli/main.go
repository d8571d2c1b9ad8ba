package main

import (
	"os"

	"github.com/lubluniky/cent-client-go/cmd/centcli/commands"
)

var version = "dev"

func main() {
	if err := commands.Execute(version); err != nil {
		os.Exit(1)
	}
}
