package main

import "github.com/docshadow/docshadow/internal/cli"

func main() {
	cli.Execute()
}
