package main

import (
	"fmt"
	"os"

	"github.com/cppla/microblog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "microblog:", err)
		os.Exit(1)
	}
}
