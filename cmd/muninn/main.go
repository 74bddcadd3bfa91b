package main

import "github.com/muninn-cache/muninn/cmd/muninn/cmd"

func main() {
	cmd.Execute()
}
