package main

import "github.com/pfrederiksen/golf-rounds/internal/cli"

func main() {
	cli.Execute()
}
