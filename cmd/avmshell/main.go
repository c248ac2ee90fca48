package main

import (
	"os"

	"github.com/mkalinski/go-avm2/cmd/avmshell/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
