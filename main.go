package main

import (
	"os"

	"github.com/rajeshhitechvalley/Cfapp-sub001/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
