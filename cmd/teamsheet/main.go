// cmd/teamsheet/main.go
package main

import (
	"os"

	"github.com/codr1/Pitchside/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
