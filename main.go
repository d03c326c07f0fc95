package main

import (
	"os"

	"sotest-driver-go/sotest-go"
)

func main() {
	os.Exit(int(sotest_go.Main(os.Args, os.Stdin, os.Stdout, os.Stderr)))
}
