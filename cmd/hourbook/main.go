package main

import "github.com/hourbook-app/hourbook/internal/cli"

func main() {
	cli.Execute()
}
