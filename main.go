package main

import "aiup/internal/cli"

func main() {
	cli.Execute()
}
