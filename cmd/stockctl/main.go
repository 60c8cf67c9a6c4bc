package main

import (
	"fmt"
	"os"

	"github.com/Caio-C8/inventory-system/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
