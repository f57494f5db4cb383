package main

import "github.com/forPelevin/blacksplit/internal/cli"

func main() {
	cli.Main()
}
