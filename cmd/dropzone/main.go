// filepath: cmd/dropzone/main.go
package main

import (
	"github.com/KodyMike/DropZone/internal/cli"
)

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
