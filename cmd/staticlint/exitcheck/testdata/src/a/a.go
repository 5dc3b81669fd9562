package main

import "os"

func main() {
	defer func() {
		os.Exit(0) // closures are not reported
	}()

	if len(os.Args) > 1 {
		os.Exit(1) // want "direct os.Exit call in main.main; return from main instead"
	}
}

func helper() {
	os.Exit(2) // only main.main is reported
}
