// Package main provides the basket CLI.
package main

import "github.com/mesh-intelligence/basket/internal/cli"

func main() {
	cli.Execute()
}
