package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Houston, we have a problem: %v\n", err)
		os.Exit(1)
	}
}
