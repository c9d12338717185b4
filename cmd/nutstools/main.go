package main

import "github.com/evlt/nutstools/internal/cli"

func main() {
	cli.Execute()
}
