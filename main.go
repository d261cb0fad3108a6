package main

import (
	"os"

	"github.com/corylus-git/corylus-sub000/internal/cli"
)

func main() {
	code, _ := cli.Run(os.Args, nil)
	os.Exit(code)
}
