// Command geograph evaluates procedural geometry node graphs written in the
// geograph DSL or stored as graph documents, and exports the result as STL.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "geograph:", err)
		os.Exit(1)
	}
}
