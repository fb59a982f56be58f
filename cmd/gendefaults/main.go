package main

import (
	"os"

	"github.com/teranos/gendefaults/cmd/gendefaults/commands"
	"github.com/teranos/gendefaults/logger"
)

func main() {
	root := commands.NewRootCmd()
	err := root.Execute()
	logger.Cleanup()
	if err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
