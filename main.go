package main

import (
	"os"

	"github.com/votuchankinh/thuvien/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
