package main

import (
	"github.com/smohring/contao-cearch-pro/internal/adapters/driving/cli"
)

// Set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.Execute(version)
}
