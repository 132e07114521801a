package main

import (
	"os"

	"github.com/AnyUserName/glyphcam/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
