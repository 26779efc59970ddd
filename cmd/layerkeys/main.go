// Command layerkeys drives a layer stack from keyboard shortcuts.
package main

import (
	"os"

	"github.com/dshills/layerkeys/cmd/layerkeys/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
