package main

import "github.com/forPelevin/bvs/internal/cli"

func main() {
	cli.Main()
}
