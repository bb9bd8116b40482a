package main

import "github.com/goliatone/go-viewgen/internal/cli"

func main() {
	cli.Execute()
}
