package main

import "Ironforge/internal/cli"

func main() {
	cli.Execute()
}
