package main

import "github.com/forPelevin/dubcut/internal/cli"

func main() {
	cli.Main()
}
