// Command desk is a terminal front end for the library catalog and lending
// records kept by the REST backend.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
