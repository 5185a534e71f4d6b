package main

import (
	"os"

	"github.com/hugochinchilla79/minfraud_sdk/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
