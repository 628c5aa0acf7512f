package main

import "github.com/svgpress/svgpress/internal/cli"

func main() {
	cli.Execute()
}
