package main

import "os"

func run() int { return 0 }

func main() {
	defer func() {
		os.Exit(2)
	}()
	if run() != 0 {
		os.Exit(1) // want "direct call to os.Exit is not allowed in main"
	}
}

func helper() {
	os.Exit(3)
}
