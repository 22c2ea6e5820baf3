package main

import (
	"os"

	"github.com/zoobzio/metricsql/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
