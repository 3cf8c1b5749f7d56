package main

import "github.com/vbell/mediagrab/internal/adapters/cli"

func main() {
	cli.Execute()
}
