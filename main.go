package main

import (
	"os"

	"github.com/pipeforge/prql-translator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
