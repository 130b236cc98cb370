package main

import (
	"fmt"
	"os"

	"skpipe/internal/log"
)

func main() {
	defer log.Sync()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "skpipe:", err)
		os.Exit(1)
	}
}
