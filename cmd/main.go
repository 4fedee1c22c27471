// Command gcpv-lynx exports GCPV competition databases to Lynx EVT files and
// a races.json live view.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
