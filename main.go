package main

import (
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 2 // configuration or input error
)

func main() {
	if err := execute(); err != nil {
		exitWith(err.Error())
	}
	os.Exit(ExitSuccess)
}

func exitWith(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	os.Exit(ExitError)
}
