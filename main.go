package main

import (
	"os"

	"github.com/pstuifzand/tui-timeline/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
