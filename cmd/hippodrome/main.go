package main

import "github.com/neighborstan/hippodrome/internal/cli"

func main() {
	cli.Execute()
}
