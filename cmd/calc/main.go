// Command calc runs the calculation engines from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	c := &cli{}
	if err := run(c, newRootCommand(c)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
