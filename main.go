package main

import (
	"fmt"
	"os"

	"github.com/jrf25906/perspective-app-sub000/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
