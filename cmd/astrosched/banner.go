package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const asciiBanner = `
        _____
     .-'     '-.        ASTRONAUT
    /  .---.    \       SCHEDULE
   |  /     \    |      MANAGER
   |  \_____/    |
    \   ___     /
     '-|   |--'
       |___|
`

// PrintBanner writes the startup banner.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, asciiBanner)
	fmt.Fprintln(w)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
