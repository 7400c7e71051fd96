// Command sm2deck manages a vocabulary deck scheduled with SM-2.
//
//	sm2deck add "la mer" "the sea"
//	sm2deck due
//	sm2deck review 1 Hesitant
//	sm2deck stats
//	sm2deck simulate --days 90
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
