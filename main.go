package main

import (
	"os"

	"airbnb-merger/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
