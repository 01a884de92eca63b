package main

import (
	"os"
)

var exitFunc = os.Exit

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		exitFunc(1)
	}
}
