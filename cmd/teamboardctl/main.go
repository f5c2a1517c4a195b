package main

import (
	"fmt"
	"os"

	"teamboard/collab-core/cmd/teamboardctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
