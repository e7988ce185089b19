package main

import (
	"os"

	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
